package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known development key (anvil/hardhat account 0).
const (
	devKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func testManager() (*Manager, *InMemoryKeystore) {
	ks := NewInMemoryKeystore()
	return NewManager(WithKeystore(ks)), ks
}

func TestImportDerivesAddress(t *testing.T) {
	m, ks := testManager()

	acct, err := m.Import("dev", devKey)
	require.NoError(t, err)
	assert.Equal(t, devAddress, acct.Address)
	assert.Equal(t, TypeSigning, acct.Type)
	assert.True(t, acct.IsDefault, "first account becomes the default")

	stored, err := ks.Retrieve(acct.KeyRef)
	require.NoError(t, err)
	assert.Equal(t, devKey, stored)
}

func TestImportAcceptsHexPrefix(t *testing.T) {
	m, _ := testManager()
	acct, err := m.Import("dev", "0x"+devKey)
	require.NoError(t, err)
	assert.Equal(t, devAddress, acct.Address)
}

func TestImportRejectsDuplicateName(t *testing.T) {
	m, _ := testManager()
	_, err := m.Import("dev", devKey)
	require.NoError(t, err)

	_, err = m.Import("dev", devKey)
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestImportRejectsBadKey(t *testing.T) {
	m, _ := testManager()
	_, err := m.Import("dev", "not-a-key")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestAddWatch(t *testing.T) {
	m, _ := testManager()
	require.NoError(t, m.AddWatch("whale", devAddress))

	acct, err := m.Get("whale")
	require.NoError(t, err)
	assert.Equal(t, TypeWatchOnly, acct.Type)
	assert.Empty(t, acct.KeyRef)
}

func TestRemoveDeletesKey(t *testing.T) {
	m, ks := testManager()
	acct, err := m.Import("dev", devKey)
	require.NoError(t, err)

	require.NoError(t, m.Remove("dev"))

	_, err = m.Get("dev")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = ks.Retrieve(acct.KeyRef)
	assert.Error(t, err, "the private key is gone with the account")

	assert.ErrorIs(t, m.Remove("dev"), ErrAccountNotFound)
}

func TestSetDefault(t *testing.T) {
	m, _ := testManager()
	m.Import("a", devKey)
	m.AddWatch("b", devAddress)

	require.NoError(t, m.SetDefault("b"))
	def := m.Default()
	require.NotNil(t, def)
	assert.Equal(t, "b", def.Name)

	a, _ := m.Get("a")
	assert.False(t, a.IsDefault)

	assert.ErrorIs(t, m.SetDefault("missing"), ErrAccountNotFound)
}

func TestDefaultFallsBackToSingleAccount(t *testing.T) {
	m, _ := testManager()
	assert.Nil(t, m.Default())

	m.AddWatch("only", devAddress)
	def := m.Default()
	require.NotNil(t, def)
	assert.Equal(t, "only", def.Name)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	ks := NewInMemoryKeystore()

	m := NewManager(WithStore(NewJSONStore(path)), WithKeystore(ks))
	_, err := m.Import("dev", devKey)
	require.NoError(t, err)

	// A fresh manager over the same file sees the account.
	m2 := NewManager(WithStore(NewJSONStore(path)), WithKeystore(ks))
	acct, err := m2.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, devAddress, acct.Address)
	assert.True(t, acct.IsDefault)
}

func TestJSONStoreMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "nope.json"))
	accounts, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
