package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Explorer is a client for Etherscan/BlockScout-compatible block explorer
// APIs. It covers the two endpoints the dashboard needs: ABI lookup by
// address and a proxied eth_call for the read fallback path.
type Explorer struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewExplorer creates an explorer client. apiURL is the API base, e.g.
// "https://api.etherscan.io/api". apiKey may be empty (free tier).
func NewExplorer(apiURL, apiKey string) *Explorer {
	return &Explorer{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// explorerResponse is the raw Etherscan-compatible API envelope.
// Result is kept as RawMessage because a failed call returns a plain string
// (e.g. "NOTOK") while a successful call returns a JSON value.
type explorerResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// FetchABI fetches a verified contract's ABI JSON text by address.
func (e *Explorer) FetchABI(ctx context.Context, address string) (string, error) {
	env, err := e.get(ctx, map[string]string{
		"module":  "contract",
		"action":  "getabi",
		"address": address,
	})
	if err != nil {
		return "", fmt.Errorf("fetching ABI: %w", err)
	}
	if env.Status != "1" {
		return "", fmt.Errorf("explorer error: %s", resultMessage(env))
	}

	var abiText string
	if err := json.Unmarshal(env.Result, &abiText); err != nil {
		return "", fmt.Errorf("parsing ABI response: %w", err)
	}
	return abiText, nil
}

// ProxyCall issues an eth_call through the explorer's proxy module and
// returns the raw hex result. Used as the fallback when direct RPC reads
// are exhausted.
func (e *Explorer) ProxyCall(ctx context.Context, to, calldata string) (string, error) {
	env, err := e.get(ctx, map[string]string{
		"module": "proxy",
		"action": "eth_call",
		"to":     to,
		"data":   calldata,
		"tag":    "latest",
	})
	if err != nil {
		return "", fmt.Errorf("proxy eth_call: %w", err)
	}

	// The proxy module mirrors JSON-RPC: status is absent on success and
	// the result is the raw hex string; errors come back as envelopes.
	var raw string
	if err := json.Unmarshal(env.Result, &raw); err == nil && strings.HasPrefix(raw, "0x") {
		return raw, nil
	}
	if env.Status != "" && env.Status != "1" {
		return "", fmt.Errorf("proxy eth_call: %s", resultMessage(env))
	}
	return "", fmt.Errorf("proxy eth_call: unexpected result %s", string(env.Result))
}

func (e *Explorer) get(ctx context.Context, params map[string]string) (*explorerResponse, error) {
	// Append with "&" when the base already carries a query (Etherscan V2
	// bases include ?chainid=X).
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	if e.apiKey != "" {
		q.Set("apikey", e.apiKey)
	}
	sep := "?"
	if strings.Contains(e.apiURL, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.apiURL+sep+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	defer resp.Body.Close()

	var env explorerResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing explorer response: %w", err)
	}
	return &env, nil
}

// resultMessage extracts a useful error string from a failed envelope:
// result may be a plain error string, otherwise fall back to Message.
func resultMessage(env *explorerResponse) string {
	var msg string
	if err := json.Unmarshal(env.Result, &msg); err == nil && msg != "" {
		return msg
	}
	return env.Message
}
