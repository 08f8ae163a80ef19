package invoke

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/chain"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
)

const testContract = "0x9999999999999999999999999999999999999999"

var setCountFn = abi.Entry{
	Name:            "setCount",
	Type:            "function",
	Inputs:          []abi.Param{{Name: "n", Type: "uint256"}},
	StateMutability: "nonpayable",
}

type fakeWallet struct {
	chainID    int64
	knownIDs   map[int64]bool
	switched   []int64
	added      []chain.Chain
	signErr    error
	signedGas  uint64
	signedVal  *big.Int
	signedData []byte
}

func (w *fakeWallet) Address() string { return "0x1111111111111111111111111111111111111111" }

func (w *fakeWallet) ChainID(ctx context.Context) (int64, error) { return w.chainID, nil }

func (w *fakeWallet) SwitchChain(ctx context.Context, id int64) error {
	if !w.knownIDs[id] {
		return chain.ErrUnknownChain
	}
	w.switched = append(w.switched, id)
	w.chainID = id
	return nil
}

func (w *fakeWallet) AddChain(ctx context.Context, c chain.Chain) error {
	w.added = append(w.added, c)
	w.knownIDs[c.ID] = true
	return nil
}

func (w *fakeWallet) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	if w.signErr != nil {
		return nil, w.signErr
	}
	w.signedGas = tx.Gas()
	w.signedVal = tx.Value()
	w.signedData = tx.Data()
	return []byte{0xf8, 0x01}, nil
}

type fakeTxClient struct {
	gasPrice    *big.Int
	estimateErr error
	estimate    uint64
	nonce       uint64
	sendErr     error
	sentRaw     string
	receipt     *chain.TxReceipt
	receiptErr  error
}

func (c *fakeTxClient) GasPrice(ctx context.Context) (*big.Int, error) {
	if c.gasPrice == nil {
		return big.NewInt(1000000000), nil
	}
	return c.gasPrice, nil
}

func (c *fakeTxClient) EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (uint64, error) {
	if c.estimateErr != nil {
		return 0, c.estimateErr
	}
	return c.estimate, nil
}

func (c *fakeTxClient) GetNonce(ctx context.Context, address string) (uint64, error) {
	return c.nonce, nil
}

func (c *fakeTxClient) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	if c.sendErr != nil {
		return "", c.sendErr
	}
	c.sentRaw = rawTx
	return "0xhash", nil
}

func (c *fakeTxClient) WaitForReceipt(ctx context.Context, hash string, timeout time.Duration) (*chain.TxReceipt, error) {
	return c.receipt, c.receiptErr
}

func countDraft(n string) template.MethodDraft {
	d := template.NewMethodDraft()
	d.Values["0"] = n
	return d
}

func TestWriteHappyPath(t *testing.T) {
	wallet := &fakeWallet{chainID: 8453, knownIDs: map[int64]bool{8453: true}}
	client := &fakeTxClient{estimate: 60000, nonce: 4}

	sub, err := NewWriter(client, wallet, 8453, chain.Chain{ID: 8453}).
		Write(context.Background(), testContract, setCountFn, countDraft("7"))
	require.NoError(t, err)
	assert.Equal(t, "0xhash", sub.Hash)
	assert.Equal(t, uint64(60000), wallet.signedGas)
	assert.Equal(t, "0xf801", client.sentRaw)
	// Already on the right chain, so no switch happened.
	assert.Empty(t, wallet.switched)
}

func TestWriteRequiresWallet(t *testing.T) {
	w := NewWriter(&fakeTxClient{}, nil, 1, chain.Chain{ID: 1})
	_, err := w.Write(context.Background(), testContract, setCountFn, countDraft("1"))
	assert.ErrorIs(t, err, ErrNoWallet)
}

func TestWriteRejectsReadFunction(t *testing.T) {
	wallet := &fakeWallet{chainID: 1, knownIDs: map[int64]bool{1: true}}
	readFn := abi.Entry{Name: "count", Type: "function", StateMutability: "view"}
	_, err := NewWriter(&fakeTxClient{}, wallet, 1, chain.Chain{ID: 1}).
		Write(context.Background(), testContract, readFn, template.NewMethodDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a write function")
}

func TestWriteSwitchesChain(t *testing.T) {
	wallet := &fakeWallet{chainID: 1, knownIDs: map[int64]bool{1: true, 8453: true}}
	client := &fakeTxClient{estimate: 21000}

	_, err := NewWriter(client, wallet, 8453, chain.Chain{ID: 8453}).
		Write(context.Background(), testContract, setCountFn, countDraft("1"))
	require.NoError(t, err)
	assert.Equal(t, []int64{8453}, wallet.switched)
}

func TestWriteRegistersUnknownChain(t *testing.T) {
	wallet := &fakeWallet{chainID: 1, knownIDs: map[int64]bool{1: true}}
	client := &fakeTxClient{estimate: 21000}
	info := chain.Chain{ID: 31337, Name: "anvil", RPC: "http://127.0.0.1:8545"}

	_, err := NewWriter(client, wallet, 31337, info).
		Write(context.Background(), testContract, setCountFn, countDraft("1"))
	require.NoError(t, err)
	require.Len(t, wallet.added, 1)
	assert.Equal(t, info, wallet.added[0])
	assert.Equal(t, []int64{31337}, wallet.switched)
}

func TestWriteGasEstimateFallback(t *testing.T) {
	wallet := &fakeWallet{chainID: 1, knownIDs: map[int64]bool{1: true}}
	client := &fakeTxClient{estimateErr: errors.New("execution reverted")}

	_, err := NewWriter(client, wallet, 1, chain.Chain{ID: 1}).
		Write(context.Background(), testContract, setCountFn, countDraft("1"))
	require.NoError(t, err)
	assert.Equal(t, uint64(100000), wallet.signedGas)
}

func TestWritePayableValue(t *testing.T) {
	payableFn := abi.Entry{
		Name:            "deposit",
		Type:            "function",
		StateMutability: "payable",
	}
	wallet := &fakeWallet{chainID: 1, knownIDs: map[int64]bool{1: true}}
	client := &fakeTxClient{estimate: 21000}

	draft := template.NewMethodDraft()
	draft.PayableValue = "0.5"
	_, err := NewWriter(client, wallet, 1, chain.Chain{ID: 1}).
		Write(context.Background(), testContract, payableFn, draft)
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", wallet.signedVal.String())
}

func TestWriteSignErrorIsNotRetried(t *testing.T) {
	wallet := &fakeWallet{
		chainID:  1,
		knownIDs: map[int64]bool{1: true},
		signErr:  errors.New("locked"),
	}
	client := &fakeTxClient{estimate: 21000}

	_, err := NewWriter(client, wallet, 1, chain.Chain{ID: 1}).
		Write(context.Background(), testContract, setCountFn, countDraft("1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing transaction")
	assert.Empty(t, client.sentRaw)
}

func TestSubmissionWait(t *testing.T) {
	tests := []struct {
		name       string
		receipt    *chain.TxReceipt
		receiptErr error
		want       WriteStatus
		wantErr    bool
	}{
		{"success", &chain.TxReceipt{Status: 1, BlockNumber: 10}, nil, StatusSuccess, false},
		{"reverted", &chain.TxReceipt{Status: 0, BlockNumber: 10}, nil, StatusFailure, false},
		{"timeout", nil, errors.New("not mined within 3m0s"), StatusUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Submission{
				Hash:    "0xhash",
				client:  &fakeTxClient{receipt: tt.receipt, receiptErr: tt.receiptErr},
				timeout: time.Second,
			}
			receipt, status, err := sub.Wait(context.Background())
			assert.Equal(t, tt.want, status)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, receipt)
			} else {
				require.NoError(t, err)
				require.NotNil(t, receipt)
			}
		})
	}
}

func TestWriteStatusString(t *testing.T) {
	assert.Equal(t, "confirmed-success", StatusSuccess.String())
	assert.Equal(t, "confirmed-failure", StatusFailure.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
