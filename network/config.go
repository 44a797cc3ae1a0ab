package network

import "fmt"

// ChainConfig holds the endpoints and contract address for one EVM network.
// RPCURL is the public node used for reads, simulation and receipts;
// SignerURL is the wallet endpoint that asks the account holder to approve
// transactions.
type ChainConfig struct {
	Name      string `json:"name" yaml:"name"`
	ChainID   uint64 `json:"chain_id" yaml:"chain_id"`
	RPCURL    string `json:"rpc_url" yaml:"rpc_url"`
	SignerURL string `json:"signer_url" yaml:"signer_url"`
	Factory   string `json:"factory" yaml:"factory"`
}

// NetworkPresets contains default endpoints for known networks.
// The factory address is deliberately absent: deployments differ per
// installation and must be configured explicitly.
var NetworkPresets = map[string]ChainConfig{
	"bsc-testnet": {
		ChainID:   97,
		RPCURL:    "https://data-seed-prebsc-1-s1.bnbchain.org:8545",
		SignerURL: "http://localhost:8550",
	},
	"localhost": {
		ChainID:   1337,
		RPCURL:    "http://localhost:8545",
		SignerURL: "http://localhost:8545",
	},
}

// ResolveConfig merges chain configuration from three sources with decreasing priority:
//  1. CLI flags (highest priority)
//  2. Environment variables (INSTANTWALLET_RPC_URL, INSTANTWALLET_SIGNER_URL, INSTANTWALLET_FACTORY)
//  3. Network presets (lowest priority)
//
// Unknown networks are accepted only when flags or environment supply both
// endpoints and a chain ID.
func ResolveConfig(flags *ChainConfig, env map[string]string, network string) (*ChainConfig, error) {
	result := ChainConfig{Name: network}

	if preset, ok := NetworkPresets[network]; ok {
		result = preset
		result.Name = network
	}

	if env != nil {
		if v, ok := env["INSTANTWALLET_RPC_URL"]; ok && v != "" {
			result.RPCURL = v
		}
		if v, ok := env["INSTANTWALLET_SIGNER_URL"]; ok && v != "" {
			result.SignerURL = v
		}
		if v, ok := env["INSTANTWALLET_FACTORY"]; ok && v != "" {
			result.Factory = v
		}
	}

	if flags != nil {
		if flags.RPCURL != "" {
			result.RPCURL = flags.RPCURL
		}
		if flags.SignerURL != "" {
			result.SignerURL = flags.SignerURL
		}
		if flags.Factory != "" {
			result.Factory = flags.Factory
		}
		if flags.ChainID != 0 {
			result.ChainID = flags.ChainID
		}
	}

	if result.RPCURL == "" || result.SignerURL == "" || result.ChainID == 0 {
		return nil, fmt.Errorf("%w: %s requires explicit RPC URL, signer URL and chain ID", ErrUnknownNetwork, network)
	}
	if result.Factory == "" {
		return nil, fmt.Errorf("network: %s requires a factory address (set --factory, INSTANTWALLET_FACTORY, or config file)", network)
	}
	if !IsValidAddress(result.Factory) {
		return nil, fmt.Errorf("network: invalid factory address %q", result.Factory)
	}

	return &result, nil
}
