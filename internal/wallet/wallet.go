package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/chain"
)

// Connected is an unlocked account bound to a chain. It satisfies the
// invoker's wallet interface: the invoker asks it to switch chains before
// a write, and to register the configured chain when the switch fails.
type Connected struct {
	signer   *Signer
	registry *chain.Registry
	current  int64
}

// Connect binds an account to a chain registry, starting on the given
// chain id.
func Connect(acct *Account, ks KeystoreBackend, registry *chain.Registry, chainID int64) *Connected {
	return &Connected{
		signer:   NewSigner(acct, ks),
		registry: registry,
		current:  chainID,
	}
}

// Address returns the connected account's address.
func (c *Connected) Address() string {
	return c.signer.Address()
}

// ChainID returns the chain the wallet is currently bound to.
func (c *Connected) ChainID(ctx context.Context) (int64, error) {
	return c.current, nil
}

// SwitchChain rebinds the wallet to a registered chain. Returns
// chain.ErrUnknownChain when the id is not in the registry.
func (c *Connected) SwitchChain(ctx context.Context, id int64) error {
	if _, ok := c.registry.Get(id); !ok {
		return chain.ErrUnknownChain
	}
	c.current = id
	return nil
}

// AddChain registers a chain descriptor so a later SwitchChain succeeds.
func (c *Connected) AddChain(ctx context.Context, ch chain.Chain) error {
	c.registry.Add(ch)
	return nil
}

// SignTx signs a transaction with the connected account's key.
func (c *Connected) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	return c.signer.SignTx(tx, chainID)
}
