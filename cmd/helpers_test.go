package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
)

func transferFn() abi.Entry {
	return abi.Entry{
		Name: "transfer",
		Type: "function",
		Inputs: []abi.Param{
			{Name: "to", Type: "address"},
			{Name: "amount", Type: "uint256"},
		},
		StateMutability: "nonpayable",
	}
}

func TestPositionalDraft(t *testing.T) {
	fn := transferFn()

	draft, err := positionalDraft(fn, []string{"0xabc", "1.5"}, []string{"1=18"})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", draft.Values["0"])
	assert.Equal(t, "1.5", draft.Values["1"])
	assert.Equal(t, 18, draft.Exponents["1"])
}

func TestPositionalDraftArgCountMismatch(t *testing.T) {
	_, err := positionalDraft(transferFn(), []string{"0xabc"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "takes 2 argument(s), got 1")
}

func TestPositionalDraftScaleValidation(t *testing.T) {
	fn := transferFn()

	t.Run("malformed", func(t *testing.T) {
		_, err := positionalDraft(fn, []string{"0xabc", "1"}, []string{"amount=18"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want index=exponent")
	})

	t.Run("off-menu exponent", func(t *testing.T) {
		_, err := positionalDraft(fn, []string{"0xabc", "1"}, []string{"1=7"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exponent must be one of")
	})

	t.Run("zero is allowed", func(t *testing.T) {
		draft, err := positionalDraft(fn, []string{"0xabc", "1"}, []string{"1=0"})
		require.NoError(t, err)
		assert.Equal(t, 0, draft.Exponents["1"])
	})
}

func TestFindMethodOverloads(t *testing.T) {
	entries := []abi.Entry{
		transferFn(),
		{
			Name: "transfer",
			Type: "function",
			Inputs: []abi.Param{
				{Name: "to", Type: "address"},
				{Name: "amount", Type: "uint256"},
				{Name: "data", Type: "bytes"},
			},
			StateMutability: "nonpayable",
		},
	}

	_, err := findMethod(entries, "transfer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")

	fn, err := findMethod(entries, "write:transfer(address,uint256)")
	require.NoError(t, err)
	assert.Len(t, fn.Inputs, 2)

	_, err = findMethod(entries, "mint")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
