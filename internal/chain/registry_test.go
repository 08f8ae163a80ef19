package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySeeds(t *testing.T) {
	r := NewRegistry()

	eth, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "ethereum", eth.Name)

	_, ok = r.Get(99999)
	assert.False(t, ok)
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	r.Add(Chain{ID: 31337, Name: "anvil", RPC: "http://127.0.0.1:8545"})

	c, ok := r.Get(31337)
	require.True(t, ok)
	assert.Equal(t, "anvil", c.Name)

	// Add replaces an existing descriptor.
	r.Add(Chain{ID: 31337, Name: "local", RPC: "http://127.0.0.1:8545"})
	c, _ = r.Get(31337)
	assert.Equal(t, "local", c.Name)
}

func TestRegistryAllSorted(t *testing.T) {
	r := NewRegistry()
	all := r.All()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}
