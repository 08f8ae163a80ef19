package invoke

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/chain"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/codec"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
)

// ErrNoWallet is returned when a write is attempted without a connected
// wallet.
var ErrNoWallet = errors.New("no wallet connected")

// Wallet abstracts the connected signing wallet: an account, the chain it
// is currently bound to, and the ability to switch or register chains.
type Wallet interface {
	Address() string
	ChainID(ctx context.Context) (int64, error)
	SwitchChain(ctx context.Context, id int64) error
	AddChain(ctx context.Context, c chain.Chain) error
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// TxClient is the transport a write needs. *chain.EVMClient satisfies it.
type TxClient interface {
	GasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (uint64, error)
	GetNonce(ctx context.Context, address string) (uint64, error)
	SendRawTransaction(ctx context.Context, rawTx string) (string, error)
	WaitForReceipt(ctx context.Context, hash string, timeout time.Duration) (*chain.TxReceipt, error)
}

// WriteStatus is the terminal state of a write invocation.
type WriteStatus int

const (
	// StatusUnknown means no receipt arrived before the timeout.
	StatusUnknown WriteStatus = iota
	StatusSuccess
	StatusFailure
)

func (s WriteStatus) String() string {
	switch s {
	case StatusSuccess:
		return "confirmed-success"
	case StatusFailure:
		return "confirmed-failure"
	default:
		return "unknown"
	}
}

// Submission is a broadcast write: the hash is known immediately, the
// receipt arrives via Wait.
type Submission struct {
	Hash string

	client  TxClient
	timeout time.Duration
}

// Wait blocks until the transaction is mined or the timeout passes.
// Wallet and mining failures are never retried.
func (s *Submission) Wait(ctx context.Context) (*chain.TxReceipt, WriteStatus, error) {
	receipt, err := s.client.WaitForReceipt(ctx, s.Hash, s.timeout)
	if err != nil {
		return nil, StatusUnknown, err
	}
	if receipt.Status == 1 {
		return receipt, StatusSuccess, nil
	}
	return receipt, StatusFailure, nil
}

// Writer submits state-changing calls through a connected wallet.
type Writer struct {
	client  TxClient
	wallet  Wallet
	chainID int64
	// chain descriptor handed to the wallet when it must register the
	// configured chain (AddChain path).
	chainInfo      chain.Chain
	receiptTimeout time.Duration
	log            zerolog.Logger
}

// NewWriter creates a Writer targeting the configured chain. chainInfo
// carries the panel's RPC and explorer URLs for add-chain requests.
func NewWriter(client TxClient, wallet Wallet, chainID int64, chainInfo chain.Chain) *Writer {
	return &Writer{
		client:         client,
		wallet:         wallet,
		chainID:        chainID,
		chainInfo:      chainInfo,
		receiptTimeout: 3 * time.Minute,
		log:            zerolog.Nop(),
	}
}

// WithLogger attaches a diagnostic logger.
func (w *Writer) WithLogger(log zerolog.Logger) *Writer {
	w.log = log
	return w
}

// WithReceiptTimeout overrides how long Wait polls for a receipt.
func (w *Writer) WithReceiptTimeout(d time.Duration) *Writer {
	w.receiptTimeout = d
	return w
}

// Write submits a state-changing call. The wallet's chain is aligned with
// the configured chain first; then the call is encoded, signed and
// broadcast. Returns a Submission with the hash; the caller awaits the
// receipt separately. No step is retried automatically.
func (w *Writer) Write(ctx context.Context, contractAddr string, fn abi.Entry, draft template.MethodDraft) (*Submission, error) {
	if w.wallet == nil {
		return nil, ErrNoWallet
	}
	if !fn.IsWriteFunction() {
		return nil, fmt.Errorf("function %q is not a write function (stateMutability: %s)", fn.Name, fn.StateMutability)
	}

	if err := w.ensureChain(ctx); err != nil {
		return nil, err
	}

	args, err := Assemble(fn, draft)
	if err != nil {
		return nil, err
	}
	calldata, err := codec.EncodeCall(fn, args)
	if err != nil {
		return nil, err
	}

	value := new(big.Int)
	if fn.IsPayable() && draft.PayableValue != "" {
		value, err = codec.ParseEther(draft.PayableValue)
		if err != nil {
			return nil, err
		}
	}

	from := w.wallet.Address()
	dataHex := "0x" + common.Bytes2Hex(calldata)

	gas, err := w.client.EstimateGas(ctx, from, contractAddr, dataHex, value)
	if err != nil {
		gas = 100000 // estimate is advisory; let the node reject if short
	}
	gasPrice, err := w.client.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting gas price: %w", err)
	}
	nonce, err := w.client.GetNonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("getting nonce: %w", err)
	}

	chainID := big.NewInt(w.chainID)
	toAddr := common.HexToAddress(contractAddr)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &toAddr,
		Value:     value,
		Data:      calldata,
	})

	raw, err := w.wallet.SignTx(tx, chainID)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := w.client.SendRawTransaction(ctx, "0x"+common.Bytes2Hex(raw))
	if err != nil {
		return nil, fmt.Errorf("broadcasting transaction: %w", err)
	}

	w.log.Debug().Str("hash", hash).Str("fn", fn.Signature()).Msg("transaction submitted")
	return &Submission{Hash: hash, client: w.client, timeout: w.receiptTimeout}, nil
}

// ensureChain aligns the wallet with the configured chain id: mismatch →
// switch; unknown chain → register the panel's RPC/explorer, then switch
// again.
func (w *Writer) ensureChain(ctx context.Context) error {
	current, err := w.wallet.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("wallet chain id: %w", err)
	}
	if current == w.chainID {
		return nil
	}

	err = w.wallet.SwitchChain(ctx, w.chainID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, chain.ErrUnknownChain) {
		return fmt.Errorf("switching wallet to chain %d: %w", w.chainID, err)
	}

	if err := w.wallet.AddChain(ctx, w.chainInfo); err != nil {
		return fmt.Errorf("adding chain %d to wallet: %w", w.chainID, err)
	}
	if err := w.wallet.SwitchChain(ctx, w.chainID); err != nil {
		return fmt.Errorf("switching wallet to chain %d: %w", w.chainID, err)
	}
	return nil
}
