package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bitfsorg/instantwallet-go/creation"
	"github.com/bitfsorg/instantwallet-go/network"
	"github.com/bitfsorg/instantwallet-go/shares"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		name   string
		owners []string
	)
	cmd := &cobra.Command{
		Use:   "create --name <name> --owner <address>=<percent> [--owner ...]",
		Short: "Create an instant wallet that splits payments between owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := buildForm(name, owners)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %.2f%%\n", form.Total())

			// Reject bad input before touching the network.
			if err := form.Validate(shares.Validator{}); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.create(ctx, cmd, form)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "wallet name")
	cmd.Flags().StringArrayVar(&owners, "owner", nil, "owner and share as <address>=<percent>; repeat per owner")
	return cmd
}

func (a *app) create(ctx context.Context, cmd *cobra.Command, form *shares.Form) error {
	s, err := a.connect(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	coord := creation.New(
		s.node,
		network.NewWalletSubmitter(s.signer, s.node),
		s.factory,
		creation.WithLogger(s.logger),
		creation.WithConfirmTimeout(a.cfg.ConfirmTimeout),
		creation.WithGracePeriod(a.cfg.GracePeriod),
		creation.WithShareDecimals(a.cfg.ShareDecimals),
		creation.WithObserver(func(_ creation.RunID, st creation.State) {
			if msg := stateMessage(st); msg != "" {
				fmt.Fprintln(out, msg)
			}
		}),
	)

	run, err := coord.SubmitForm(ctx, form, s.account, func() {
		fmt.Fprintln(out, "Wallet created.")
	})
	if err != nil {
		var f *creation.Failure
		if errors.As(err, &f) && run != nil {
			s.logger.Info("wallet creation failed", zap.String("run", string(run.ID)), zap.Stringer("kind", f.Kind))
		}
		return err
	}
	fmt.Fprintf(out, "Transaction: %s\n", run.TxHash().Hex())
	return nil
}

func stateMessage(s creation.State) string {
	switch s {
	case creation.Simulating:
		return "Simulating transaction..."
	case creation.AwaitingSignature:
		return "Waiting for signature..."
	case creation.AwaitingConfirmation:
		return "Waiting for confirmation..."
	}
	return ""
}

// buildForm fills a creation form from --name and --owner values. Values are
// stored verbatim; validation happens later.
func buildForm(name string, owners []string) (*shares.Form, error) {
	form := shares.NewForm()
	form.Name = name
	for i, o := range owners {
		addr, share, err := parseOwner(o)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			form.AddEntry()
		}
		form.UpdateEntry(i, shares.FieldAddress, addr)
		form.UpdateEntry(i, shares.FieldShare, share)
	}
	return form, nil
}

func parseOwner(s string) (addr, share string, err error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return "", "", fmt.Errorf("invalid --owner %q: want <address>=<percent>", s)
	}
	return s[:i], s[i+1:], nil
}
