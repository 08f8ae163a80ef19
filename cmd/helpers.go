package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/chain"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/codec"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/invoke"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/wallet"
)

// panelABI parses the panel's ABI text, validating the panel first.
func panelABI() ([]abi.Entry, error) {
	if err := panel.Validate(); err != nil {
		return nil, err
	}
	return abi.ParseText(panel.ABIText)
}

// findMethod resolves a function by name or full method key, erroring on
// ambiguous overloads when only a name is given.
func findMethod(entries []abi.Entry, nameOrKey string) (abi.Entry, error) {
	if e := abi.FindByKey(entries, nameOrKey); e != nil {
		return *e, nil
	}
	var matches []abi.Entry
	for _, e := range entries {
		if e.Name == nameOrKey && (e.IsReadFunction() || e.IsWriteFunction()) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return abi.Entry{}, fmt.Errorf("function %q not found in ABI", nameOrKey)
	case 1:
		return matches[0], nil
	default:
		keys := make([]string, len(matches))
		for i, e := range matches {
			keys[i] = e.MethodKey()
		}
		return abi.Entry{}, fmt.Errorf("function %q is overloaded; use one of %v", nameOrKey, keys)
	}
}

// buildExplorer returns the explorer client, or nil when the panel has no
// explorer API configured.
func buildExplorer() *chain.Explorer {
	if panel.ExplorerAPI == "" {
		return nil
	}
	return chain.NewExplorer(panel.ExplorerAPI, panel.ExplorerAPIKey)
}

// buildReader wires the read path: RPC client plus optional explorer proxy.
func buildReader() *invoke.Reader {
	client := chain.NewEVMClient(panel.SelectedRPC)
	var proxy invoke.ProxyClient
	if e := buildExplorer(); e != nil {
		proxy = e
	}
	return invoke.NewReader(client, proxy, invoke.DefaultPolicy).WithLogger(log)
}

// chainRegistry loads known chains, seeded with defaults plus the panel's
// configured chain.
func chainRegistry() *chain.Registry {
	reg := chain.NewRegistry()
	if id, err := panel.ChainIDInt(); err == nil {
		if _, ok := reg.Get(id); !ok {
			reg.Add(chain.Chain{ID: id, RPC: panel.SelectedRPC, ExplorerURL: panel.ExplorerBase})
		}
	}
	return reg
}

// accountManager returns the wallet manager persisted under the workspace.
func accountManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(filepath.Join(panel.Dir(), "wallets.json"))),
	)
}

// connectWallet unlocks the named account (or the default when name is
// empty) bound to the panel's chain.
func connectWallet(name string) (*wallet.Connected, error) {
	mgr := accountManager()
	var acct *wallet.Account
	var err error
	if name == "" {
		acct = mgr.Default()
		if acct == nil {
			return nil, invoke.ErrNoWallet
		}
	} else {
		acct, err = mgr.Get(name)
		if err != nil {
			return nil, err
		}
	}
	id, err := panel.ChainIDInt()
	if err != nil {
		return nil, err
	}
	return wallet.Connect(acct, wallet.DefaultKeystore(), chainRegistry(), id), nil
}

// buildWriter wires the write path for the named (or default) account.
func buildWriter(walletName string) (*invoke.Writer, error) {
	w, err := connectWallet(walletName)
	if err != nil {
		return nil, err
	}
	id, err := panel.ChainIDInt()
	if err != nil {
		return nil, err
	}
	info := chain.Chain{ID: id, RPC: panel.SelectedRPC, ExplorerURL: panel.ExplorerBase}
	client := chain.NewEVMClient(panel.SelectedRPC)
	return invoke.NewWriter(client, w, id, info).WithLogger(log), nil
}

// templateStore returns the template store under the workspace dir.
func templateStore() *template.Store {
	return template.NewStore(panel.TemplatesPath())
}

// positionalDraft maps positional CLI arguments onto the root nodes of a
// function's parameter tree. Tuple and tuple-array parameters take a JSON
// literal. scales holds "index=exp" decimal-scale overrides.
func positionalDraft(fn abi.Entry, args []string, scales []string) (template.MethodDraft, error) {
	tree := abi.BuildTree(fn.Inputs)
	if len(args) != len(tree) {
		return template.MethodDraft{}, fmt.Errorf("%s takes %d argument(s), got %d", fn.Name, len(tree), len(args))
	}
	draft := template.NewMethodDraft()
	for i, node := range tree {
		draft.Values[node.Path] = args[i]
	}
	for _, s := range scales {
		var idx, exp int
		if _, err := fmt.Sscanf(s, "%d=%d", &idx, &exp); err != nil {
			return template.MethodDraft{}, fmt.Errorf("bad --scale %q (want index=exponent)", s)
		}
		if !codec.ValidExponent(exp) {
			return template.MethodDraft{}, fmt.Errorf("bad --scale %q: exponent must be one of %v", s, codec.Exponents)
		}
		draft.Exponents[strconv.Itoa(idx)] = exp
	}
	return draft, nil
}
