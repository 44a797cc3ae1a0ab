package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/instantwallet-go/wallets"
)

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print how many wallets the account created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.connect(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := wallets.NewReader(s.node, s.factory).Count(cmd.Context(), s.account)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.String())
			return nil
		},
	}
}
