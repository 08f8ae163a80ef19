package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const erc20NameABI = `[{"name":"name","type":"function","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"}]`

func TestFetchABI(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"module":  r.URL.Query().Get("module"),
			"action":  r.URL.Query().Get("action"),
			"address": r.URL.Query().Get("address"),
			"apikey":  r.URL.Query().Get("apikey"),
		}
		abiText, _ := json.Marshal(erc20NameABI)
		w.Write([]byte(`{"status":"1","message":"OK","result":` + string(abiText) + `}`))
	}))
	defer srv.Close()

	text, err := NewExplorer(srv.URL, "testkey").FetchABI(context.Background(),
		"0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, erc20NameABI, text)
	assert.Equal(t, "contract", gotQuery["module"])
	assert.Equal(t, "getabi", gotQuery["action"])
	assert.Equal(t, "0x1111111111111111111111111111111111111111", gotQuery["address"])
	assert.Equal(t, "testkey", gotQuery["apikey"])
}

func TestFetchABINotVerified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Contract source code not verified"}`))
	}))
	defer srv.Close()

	_, err := NewExplorer(srv.URL, "").FetchABI(context.Background(), "0x1111111111111111111111111111111111111111")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Contract source code not verified")
}

func TestProxyCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "proxy", r.URL.Query().Get("module"))
		assert.Equal(t, "eth_call", r.URL.Query().Get("action"))
		assert.Equal(t, "latest", r.URL.Query().Get("tag"))
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x0000000000000000000000000000000000000000000000000000000000000012"}`))
	}))
	defer srv.Close()

	got, err := NewExplorer(srv.URL, "").ProxyCall(context.Background(),
		"0x1111111111111111111111111111111111111111", "0x313ce567")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000012", got)
}

func TestProxyCallErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Max rate limit reached"}`))
	}))
	defer srv.Close()

	_, err := NewExplorer(srv.URL, "").ProxyCall(context.Background(),
		"0x1111111111111111111111111111111111111111", "0x313ce567")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Max rate limit reached")
}

// Etherscan V2 bases already carry a ?chainid query; params must append
// with & instead of a second ?.
func TestExplorerQuerySeparator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "8453", r.URL.Query().Get("chainid"))
		assert.Equal(t, "getabi", r.URL.Query().Get("action"))
		w.Write([]byte(`{"status":"0","message":"NOTOK","result":"err"}`))
	}))
	defer srv.Close()

	e := NewExplorer(srv.URL+"/api?chainid=8453", "")
	_, err := e.FetchABI(context.Background(), "0x1111111111111111111111111111111111111111")
	require.Error(t, err)
}
