package chain

import (
	"errors"
	"sort"
)

// ErrUnknownChain is returned when a chain id is not in the registry. The
// invoker reacts to it by registering the configured chain and retrying.
var ErrUnknownChain = errors.New("unknown chain")

// Chain describes one known EVM chain: where to reach it and where its
// explorer lives. The registry backs the wallet's switch-chain and
// add-chain requests.
type Chain struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	RPC         string `json:"rpc"`
	ExplorerURL string `json:"explorer_url,omitempty"`
}

// Registry maps chain ids to chain descriptors. It is seeded with a few
// well-known chains; AddChain registers more at runtime.
type Registry struct {
	chains map[int64]Chain
}

// NewRegistry creates a registry pre-seeded with well-known chains.
func NewRegistry() *Registry {
	r := &Registry{chains: make(map[int64]Chain)}
	for _, c := range []Chain{
		{ID: 1, Name: "ethereum", RPC: "https://eth.llamarpc.com", ExplorerURL: "https://etherscan.io"},
		{ID: 10, Name: "optimism", RPC: "https://mainnet.optimism.io", ExplorerURL: "https://optimistic.etherscan.io"},
		{ID: 56, Name: "bnb", RPC: "https://bsc-dataseed.binance.org", ExplorerURL: "https://bscscan.com"},
		{ID: 137, Name: "polygon", RPC: "https://polygon-rpc.com", ExplorerURL: "https://polygonscan.com"},
		{ID: 8453, Name: "base", RPC: "https://mainnet.base.org", ExplorerURL: "https://basescan.org"},
		{ID: 42161, Name: "arbitrum", RPC: "https://arb1.arbitrum.io/rpc", ExplorerURL: "https://arbiscan.io"},
		{ID: 11155111, Name: "sepolia", RPC: "https://rpc.sepolia.org", ExplorerURL: "https://sepolia.etherscan.io"},
	} {
		r.chains[c.ID] = c
	}
	return r
}

// Get returns a chain by id. ok is false if not registered.
func (r *Registry) Get(id int64) (Chain, bool) {
	c, ok := r.chains[id]
	return c, ok
}

// Add registers or replaces a chain descriptor.
func (r *Registry) Add(c Chain) {
	r.chains[c.ID] = c
}

// All returns all registered chains sorted by id.
func (r *Registry) All() []Chain {
	out := make([]Chain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
