package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	panelFile     = "panel.json"
	templatesFile = "templates.json"
	chainsFile    = "chains.json"
)

// Load reads the panel config from dir (or returns an empty panel).
// dir defaults to ~/.evmdash; the EVMDASH_DIR env var and the --dir flag
// override it.
func Load(dir string) (*Panel, error) {
	dir, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create workspace dir: %w", err)
	}

	p := &Panel{dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, panelFile))
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading panel config: %w", err)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing panel config: %w", err)
	}
	p.dir = dir
	p.syncSelectedRPC()
	return p, nil
}

// Save writes the panel config to disk.
func (p *Panel) Save() error {
	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.dir, panelFile), data, 0o600)
}

// Apply replaces the panel's configuration with other's, keeping the
// workspace directory. The selected RPC is re-synced against the incoming
// list. Used when restoring a template's panel snapshot.
func (p *Panel) Apply(other Panel) {
	dir := p.dir
	*p = other
	p.dir = dir
	p.syncSelectedRPC()
}

// Dir returns the workspace directory.
func (p *Panel) Dir() string { return p.dir }

// TemplatesPath returns the template store file path.
func (p *Panel) TemplatesPath() string { return filepath.Join(p.dir, templatesFile) }

// ChainsPath returns the user-registered chains file path.
func (p *Panel) ChainsPath() string { return filepath.Join(p.dir, chainsFile) }

// RPCList splits the newline-separated RPC list text into trimmed,
// non-empty URLs.
func (p *Panel) RPCList() []string {
	var out []string
	for _, line := range strings.Split(p.RPCListText, "\n") {
		if url := strings.TrimSpace(line); url != "" {
			out = append(out, url)
		}
	}
	return out
}

// SetRPCListText replaces the RPC list and re-syncs SelectedRPC.
func (p *Panel) SetRPCListText(text string) {
	p.RPCListText = text
	p.syncSelectedRPC()
}

// syncSelectedRPC resets SelectedRPC to the first list entry whenever it is
// empty or no longer present in the list.
func (p *Panel) syncSelectedRPC() {
	list := p.RPCList()
	if len(list) == 0 {
		p.SelectedRPC = ""
		return
	}
	if !slices.Contains(list, p.SelectedRPC) {
		p.SelectedRPC = list[0]
	}
}

// ChainIDInt parses the configured chain id.
func (p *Panel) ChainIDInt() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(p.ChainID), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid chain id: %q", p.ChainID)
	}
	return id, nil
}

// Validate checks the configuration needed before any network action:
// an RPC endpoint, a well-formed contract address, a chain id, and ABI
// text. These never trigger retries — they fail synchronously.
func (p *Panel) Validate() error {
	if p.SelectedRPC == "" {
		return fmt.Errorf("no RPC configured — set one with `panel set rpcs <url>`")
	}
	if p.ContractAddress == "" {
		return fmt.Errorf("no contract address configured — set one with `panel set contract <address>`")
	}
	if !common.IsHexAddress(p.ContractAddress) {
		return fmt.Errorf("invalid contract address: %q", p.ContractAddress)
	}
	if strings.TrimSpace(p.ChainID) != "" {
		if _, err := p.ChainIDInt(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(p.ABIText) == "" {
		return fmt.Errorf("no ABI loaded — use `abi load <file>` or `abi fetch`")
	}
	return nil
}

// --- helpers ---

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv("EVMDASH_DIR"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home dir: %w", err)
	}
	return filepath.Join(home, ".evmdash"), nil
}
