package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bitfsorg/instantwallet-go/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	network    string
	rpcURL     string
	signerURL  string
	factory    string
	chainID    uint64
	account    string
	logLevel   string
}

// app carries the state built in PersistentPreRunE.
type app struct {
	flags   globalFlags
	cfg     config.Config
	logger  *zap.Logger
	closeFn func()
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "instantwallet",
		Short:         "Create and inspect instant wallets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeFn != nil {
				a.closeFn()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.instantwallet/config.yaml)")
	pf.StringVar(&a.flags.network, "network", "", "network preset (bsc-testnet, localhost) or custom name")
	pf.StringVar(&a.flags.rpcURL, "rpc", "", "node RPC URL")
	pf.StringVar(&a.flags.signerURL, "signer", "", "wallet signer RPC URL")
	pf.StringVar(&a.flags.factory, "factory", "", "wallet factory contract address")
	pf.Uint64Var(&a.flags.chainID, "chain-id", 0, "chain ID (required for custom networks)")
	pf.StringVar(&a.flags.account, "account", "", "account to act as (default: first signer account)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newCreateCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newCountCmd(a),
		newConfigCmd(a),
	)
	return root
}

// init loads the config file and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	path := a.flags.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) || explicit {
			return err
		}
		cfg = config.DefaultConfig()
	}

	if a.flags.network != "" && a.flags.network != cfg.Network {
		// Endpoints in the file belong to the file's network.
		cfg.Network = a.flags.network
		cfg.RPCURL, cfg.SignerURL, cfg.ChainID = "", "", 0
	}
	if a.flags.account != "" {
		cfg.Account = a.flags.account
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	// Same precedence as ResolveChain: flag, then env, then file.
	if v := environment()["INSTANTWALLET_RPC_URL"]; v != "" {
		cfg.RPCURL = v
	}
	if a.flags.rpcURL != "" {
		cfg.RPCURL = a.flags.rpcURL
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	logger, closeFn, err := config.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger, a.closeFn = cfg, logger, closeFn
	return nil
}
