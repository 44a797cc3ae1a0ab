package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/bitfsorg/instantwallet-go/network"
	"github.com/bitfsorg/instantwallet-go/wallets"
)

func newShowCmd(a *app) *cobra.Command {
	var includeOut bool
	cmd := &cobra.Command{
		Use:   "show <wallet-address>",
		Short: "Show a wallet's owners, totals and transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !network.IsValidAddress(args[0]) {
				return fmt.Errorf("invalid wallet address %q", args[0])
			}
			wallet := common.HexToAddress(args[0])

			s, err := a.connect(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			reader := wallets.NewReader(s.node, s.factory, wallets.WithReaderLogger(s.logger))
			detail, err := reader.Details(cmd.Context(), s.account, wallet)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printDetail(out, detail); err != nil {
				return err
			}

			// History is optional; the summary above stands without it.
			txs, err := reader.Transactions(cmd.Context(), s.account, wallet, includeOut)
			if err != nil {
				fmt.Fprintf(out, "\nTransactions unavailable: %v\n", err)
				return nil
			}
			return printTransactions(out, txs, includeOut)
		},
	}
	cmd.Flags().BoolVar(&includeOut, "out", false, "include outgoing transactions")
	return cmd
}

func printDetail(w io.Writer, d *wallets.Detail) error {
	fmt.Fprintf(w, "%s (%s)\n", d.Name, d.Status())
	fmt.Fprintf(w, "Address:        %s\n", d.Address.Hex())
	fmt.Fprintf(w, "Total received: %s\n\n", wallets.FormatEther(d.TotalReceived))

	fmt.Fprintf(w, "Owners (%d)\n", len(d.Owners))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tADDRESS\tSHARE\tENTITLED")
	for i, o := range d.Owners {
		fmt.Fprintf(tw, "%d\t%s\t%s%%\t%s\n", i+1, o.Address.Hex(), o.Percent.String(), wallets.FormatEther(o.Entitlement))
	}
	return tw.Flush()
}

func printTransactions(w io.Writer, txs []wallets.Transaction, includeOut bool) error {
	fmt.Fprintln(w)
	if len(txs) == 0 {
		if includeOut {
			fmt.Fprintln(w, "No transactions found")
		} else {
			fmt.Fprintln(w, "No IN transactions found")
		}
		return nil
	}
	fmt.Fprintf(w, "Transactions (%d)\n", len(txs))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIDE\tFROM\tTO\tAMOUNT")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tx.Side, tx.From.Hex(), tx.To.Hex(), wallets.FormatEther(tx.Amount))
	}
	return tw.Flush()
}
