package template

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/config"
)

// testStore returns a store with deterministic ids and clock.
func testStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "templates.json"))
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	tick := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return s
}

func TestStoreSaveNew(t *testing.T) {
	s := testStore(t)

	saved, err := s.Save(Template{Name: "usdc-mainnet"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", saved.ID)
	assert.Equal(t, "2026-08-01T12:01:00Z", saved.CreatedAt)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	list := s.Load()
	require.Len(t, list, 1)
	assert.Equal(t, "usdc-mainnet", list[0].Name)
}

func TestStoreSaveUpdateKeepsCreatedAt(t *testing.T) {
	s := testStore(t)

	saved, err := s.Save(Template{Name: "usdc-mainnet"})
	require.NoError(t, err)

	saved.Name = "usdc-base"
	updated, err := s.Save(saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
	assert.NotEqual(t, updated.CreatedAt, updated.UpdatedAt)

	list := s.Load()
	require.Len(t, list, 1)
	assert.Equal(t, "usdc-base", list[0].Name)
}

func panelFixture() config.Panel {
	return config.Panel{
		RPCListText:     "https://rpc.example",
		SelectedRPC:     "https://rpc.example",
		ChainID:         "1",
		ContractAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
	}
}

func TestStoreSaveSameNameUpdates(t *testing.T) {
	s := testStore(t)

	first, err := s.Save(Template{Name: "demo"})
	require.NoError(t, err)

	// Saving under the same name without an id overwrites in place.
	second, err := s.Save(Template{Name: "demo", Panel: panelFixture()})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.NotEqual(t, second.CreatedAt, second.UpdatedAt)

	list := s.Load()
	require.Len(t, list, 1)
	assert.Equal(t, "demo", list[0].Name)
	assert.Equal(t, panelFixture().ContractAddress, list[0].Panel.ContractAddress)
}

func TestStoreSaveRejectsEmptyName(t *testing.T) {
	s := testStore(t)
	_, err := s.Save(Template{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestStoreDelete(t *testing.T) {
	s := testStore(t)
	a, _ := s.Save(Template{Name: "a"})
	b, _ := s.Save(Template{Name: "b"})

	require.NoError(t, s.Delete(a.ID))
	list := s.Load()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	err := s.Delete("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStoreGetByIDOrName(t *testing.T) {
	s := testStore(t)
	saved, _ := s.Save(Template{Name: "weth"})

	byID, err := s.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "weth", byID.Name)

	byName, err := s.Get("weth")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byName.ID)

	_, err = s.Get("missing")
	require.Error(t, err)
}

func TestStoreLoadToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	assert.Empty(t, NewStore(path).Load())
}

func TestStoreSavePreservesDraftState(t *testing.T) {
	s := testStore(t)

	draft := NewMethodDraft()
	draft.Values["recipient"] = "0x1111111111111111111111111111111111111111"
	draft.Exponents["amount"] = 18
	draft.TupleArrays["orders"] = []RowDraft{{
		Values:    map[string]string{"amount": "5"},
		Exponents: map[string]int{"amount": 6},
	}}
	draft.PayableValue = "0.25"

	_, err := s.Save(Template{
		Name:         "orders",
		MethodStates: map[string]MethodDraft{"write:placeOrders((address))": draft},
	})
	require.NoError(t, err)

	got, err := s.Get("orders")
	require.NoError(t, err)
	state := got.MethodStates["write:placeOrders((address))"]
	assert.Equal(t, 18, state.Exponents["amount"])
	assert.Equal(t, "0.25", state.PayableValue)
	require.Len(t, state.TupleArrays["orders"], 1)
	assert.Equal(t, "5", state.TupleArrays["orders"][0].Values["amount"])
}
