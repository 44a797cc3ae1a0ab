package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/bitfsorg/instantwallet-go/network"
)

var envKeys = []string{"INSTANTWALLET_RPC_URL", "INSTANTWALLET_SIGNER_URL", "INSTANTWALLET_FACTORY"}

// session is a connected node plus signer for one command invocation.
type session struct {
	chainCfg *network.ChainConfig
	node     *network.Chain
	signer   *network.RPCClient
	account  common.Address
	factory  common.Address
	logger   *zap.Logger
}

func (s *session) Close() {
	s.node.Close()
}

func environment() map[string]string {
	env := make(map[string]string, len(envKeys))
	for _, k := range envKeys {
		if v := os.Getenv(k); v != "" {
			env[k] = v
		}
	}
	return env
}

// connect resolves the chain settings, dials the node and determines the
// account. With requireSigner set, the signer must be on the configured chain.
func (a *app) connect(ctx context.Context, requireSigner bool) (*session, error) {
	flags := &network.ChainConfig{
		RPCURL:    a.flags.rpcURL,
		SignerURL: a.flags.signerURL,
		Factory:   a.flags.factory,
		ChainID:   a.flags.chainID,
	}
	chainCfg, err := a.cfg.ResolveChain(flags, environment())
	if err != nil {
		return nil, err
	}
	logger := a.logger.With(zap.String("network", chainCfg.Name))

	node, err := network.DialChain(ctx, chainCfg.RPCURL,
		network.WithPollInterval(a.cfg.PollInterval),
		network.WithChainLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	s := &session{
		chainCfg: chainCfg,
		node:     node,
		signer:   network.NewRPCClient(chainCfg.SignerURL, 0),
		factory:  common.HexToAddress(chainCfg.Factory),
		logger:   logger,
	}

	nodeChain, err := node.ChainID(ctx)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: node chain id: %w", network.ErrConnectionFailed, err)
	}
	if nodeChain != chainCfg.ChainID {
		s.Close()
		return nil, fmt.Errorf("%w: node reports chain %d, want %d", network.ErrWrongChain, nodeChain, chainCfg.ChainID)
	}

	if requireSigner {
		if err := s.signer.CheckChain(ctx, chainCfg.ChainID); err != nil {
			s.Close()
			return nil, err
		}
	}

	if a.cfg.Account != "" {
		s.account = common.HexToAddress(a.cfg.Account)
	} else {
		acct, err := s.signer.PrimaryAccount(ctx)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("no --account given and signer lookup failed: %w", err)
		}
		s.account = acct
	}
	s.logger = s.logger.With(zap.String("account", s.account.Hex()))
	s.logger.Debug("connected", zap.Uint64("chain_id", chainCfg.ChainID), zap.String("factory", s.factory.Hex()))
	return s, nil
}
