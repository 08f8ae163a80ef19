package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"deposit","stateMutability":"payable",
	 "inputs":[],"outputs":[]},
	{"type":"event","name":"Transfer",
	 "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"}]}
]`

func TestParsePartitionsFunctions(t *testing.T) {
	entries, err := ParseText(sampleABI)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	reads := ReadFunctions(entries)
	writes := WriteFunctions(entries)
	require.Len(t, reads, 1)
	require.Len(t, writes, 2)
	assert.Equal(t, "balanceOf", reads[0].Name)

	// Partitioning is idempotent on its own output.
	assert.Equal(t, reads, ReadFunctions(reads))
	assert.Equal(t, writes, WriteFunctions(writes))
}

func TestStateMutabilityPredicates(t *testing.T) {
	tests := []struct {
		mutability string
		read       bool
		write      bool
		payable    bool
	}{
		{"view", true, false, false},
		{"pure", true, false, false},
		{"nonpayable", false, true, false},
		{"payable", false, true, true},
	}
	for _, tt := range tests {
		e := Entry{Type: "function", Name: "f", StateMutability: tt.mutability}
		assert.Equal(t, tt.read, e.IsReadFunction(), tt.mutability)
		assert.Equal(t, tt.write, e.IsWriteFunction(), tt.mutability)
		assert.Equal(t, tt.payable, e.IsPayable(), tt.mutability)
	}
}

func TestCanonicalTypeExpandsTuples(t *testing.T) {
	p := Param{
		Type: "tuple[]",
		Components: []Param{
			{Name: "amount", Type: "uint256"},
			{Name: "inner", Type: "tuple", Components: []Param{
				{Name: "flag", Type: "bool"},
			}},
		},
	}
	assert.Equal(t, "(uint256,(bool))[]", p.CanonicalType())
}

func TestSignatureAndSelector(t *testing.T) {
	entries, err := ParseText(sampleABI)
	require.NoError(t, err)

	transfer := FindFunction(entries, "transfer")
	require.NotNil(t, transfer)
	assert.Equal(t, "transfer(address,uint256)", transfer.Signature())
	assert.Equal(t, "0xa9059cbb", transfer.Selector())

	balanceOf := FindFunction(entries, "balanceOf")
	require.NotNil(t, balanceOf)
	assert.Equal(t, "0x70a08231", balanceOf.Selector())
}

func TestMethodKey(t *testing.T) {
	entries, err := ParseText(sampleABI)
	require.NoError(t, err)

	balanceOf := FindFunction(entries, "balanceOf")
	require.NotNil(t, balanceOf)
	assert.Equal(t, "read:balanceOf(address)", balanceOf.MethodKey())

	transfer := FindFunction(entries, "transfer")
	require.NotNil(t, transfer)
	assert.Equal(t, "write:transfer(address,uint256)", transfer.MethodKey())

	// Keys resolve back to their entries.
	found := FindByKey(entries, "write:transfer(address,uint256)")
	require.NotNil(t, found)
	assert.Equal(t, "transfer", found.Name)
	assert.Nil(t, FindByKey(entries, "read:transfer(address,uint256)"))
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := ParseText("{not json")
	assert.Error(t, err)
}
