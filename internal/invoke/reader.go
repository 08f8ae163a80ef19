package invoke

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/codec"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
)

// Policy controls the read retry/fallback behavior. It is explicit and
// injectable so tests can run without real delays.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultPolicy matches the dashboard's shipped behavior: three attempts
// with a fixed 400ms pause, no jitter.
var DefaultPolicy = Policy{MaxAttempts: 3, Backoff: 400 * time.Millisecond}

// RPCClient is the direct read transport.
type RPCClient interface {
	CallContract(ctx context.Context, to, calldata string) (string, error)
}

// ProxyClient is the explorer fallback transport.
type ProxyClient interface {
	ProxyCall(ctx context.Context, to, calldata string) (string, error)
}

// Reader issues read calls: bounded retries against the RPC endpoint,
// then one shot through the explorer proxy.
type Reader struct {
	client RPCClient
	proxy  ProxyClient // nil when no explorer API is configured
	policy Policy
	log    zerolog.Logger
}

// NewReader creates a Reader. proxy may be nil.
func NewReader(client RPCClient, proxy ProxyClient, policy Policy) *Reader {
	if policy.MaxAttempts < 1 {
		policy = DefaultPolicy
	}
	return &Reader{client: client, proxy: proxy, policy: policy, log: zerolog.Nop()}
}

// WithLogger attaches a diagnostic logger for attempt/fallback traces.
func (r *Reader) WithLogger(log zerolog.Logger) *Reader {
	r.log = log
	return r
}

// Read invokes a read-only function with arguments assembled from the
// draft and returns display-formatted outputs.
func (r *Reader) Read(ctx context.Context, contractAddr string, fn abi.Entry, draft template.MethodDraft) ([]string, error) {
	if !fn.IsReadFunction() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", fn.Name, fn.StateMutability)
	}

	args, err := Assemble(fn, draft)
	if err != nil {
		return nil, err
	}
	calldata, err := codec.EncodeCall(fn, args)
	if err != nil {
		return nil, err
	}

	raw, err := r.rawCall(ctx, contractAddr, "0x"+hex.EncodeToString(calldata))
	if err != nil {
		return nil, err
	}

	vals, err := codec.DecodeOutput(fn, common.FromHex(raw))
	if err != nil {
		return nil, err
	}
	return codec.FormatOutputs(fn, vals), nil
}

// rawCall runs the retry/fallback ladder and returns the raw hex result.
func (r *Reader) rawCall(ctx context.Context, to, calldata string) (string, error) {
	var rpcErr error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		raw, err := r.client.CallContract(ctx, to, calldata)
		if err == nil {
			return raw, nil
		}
		rpcErr = err
		r.log.Debug().Int("attempt", attempt).Err(err).Msg("rpc call failed")

		if attempt == r.policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.policy.Backoff):
		}
	}

	if r.proxy == nil {
		return "", fmt.Errorf("contract call failed after %d attempts: %w", r.policy.MaxAttempts, rpcErr)
	}

	r.log.Debug().Msg("falling back to explorer proxy")
	raw, proxyErr := r.proxy.ProxyCall(ctx, to, calldata)
	if proxyErr != nil {
		// Surface both causes: the user needs the RPC diagnostic as much
		// as the proxy one.
		return "", fmt.Errorf("rpc: %v; proxy: %v", rpcErr, proxyErr)
	}
	return raw, nil
}
