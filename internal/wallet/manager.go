package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

// Account types.
const (
	TypeWatchOnly = "watch-only"
	TypeSigning   = "signing"
)

// Errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrInvalidKey      = errors.New("invalid private key")
)

// Account holds metadata for a single imported account. Private keys live
// in the keystore; only the reference is persisted here.
type Account struct {
	Name      string
	Address   string
	Type      string
	KeyRef    string // keystore reference for signing accounts
	IsDefault bool
	CreatedAt string
}

// Store persists accounts.
type Store interface {
	Load() ([]*Account, error)
	Save([]*Account) error
}

// Manager handles account CRUD.
type Manager struct {
	store    Store
	keystore KeystoreBackend
	accounts map[string]*Account
	loaded   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the account store.
func WithStore(s Store) Option {
	return func(m *Manager) {
		m.store = s
	}
}

// WithKeystore sets the keystore backend used for private keys.
func WithKeystore(ks KeystoreBackend) Option {
	return func(m *Manager) {
		m.keystore = ks
	}
}

// NewManager creates an account manager. Defaults to an in-memory store
// and the OS keychain.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		accounts: make(map[string]*Account),
		store:    &memStore{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.keystore == nil {
		m.keystore = DefaultKeystore()
	}
	return m
}

// AddWatch registers a watch-only account for an address.
func (m *Manager) AddWatch(name, address string) error {
	if err := m.load(); err != nil {
		return err
	}
	if _, exists := m.accounts[name]; exists {
		return ErrAccountExists
	}
	m.accounts[name] = &Account{
		Name:      name,
		Address:   address,
		Type:      TypeWatchOnly,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return m.persist()
}

// Import derives the address from a hex private key, stores the key in the
// keystore and registers a signing account.
func (m *Manager) Import(name, hexKey string) (*Account, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	if _, exists := m.accounts[name]; exists {
		return nil, ErrAccountExists
	}

	privKey, err := crypto.HexToECDSA(stripHexPrefix(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	addr := crypto.PubkeyToAddress(privKey.PublicKey).Hex()

	ref, err := m.keystore.Store(name, hexKey)
	if err != nil {
		return nil, fmt.Errorf("storing key: %w", err)
	}

	acct := &Account{
		Name:      name,
		Address:   addr,
		Type:      TypeSigning,
		KeyRef:    ref,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	m.accounts[name] = acct
	if len(m.accounts) == 1 {
		acct.IsDefault = true
	}
	if err := m.persist(); err != nil {
		return nil, err
	}
	return acct, nil
}

// Get returns an account by name.
func (m *Manager) Get(name string) (*Account, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	acct, ok := m.accounts[name]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

// Remove deletes an account and its stored key.
func (m *Manager) Remove(name string) error {
	if err := m.load(); err != nil {
		return err
	}
	acct, ok := m.accounts[name]
	if !ok {
		return ErrAccountNotFound
	}
	if acct.KeyRef != "" {
		_ = m.keystore.Delete(acct.KeyRef)
	}
	delete(m.accounts, name)
	return m.persist()
}

// List returns all accounts.
func (m *Manager) List() []*Account {
	m.load() //nolint:errcheck
	out := make([]*Account, 0, len(m.accounts))
	for _, acct := range m.accounts {
		out = append(out, acct)
	}
	return out
}

// SetDefault marks an account as the default signer.
func (m *Manager) SetDefault(name string) error {
	if err := m.load(); err != nil {
		return err
	}
	if _, ok := m.accounts[name]; !ok {
		return ErrAccountNotFound
	}
	for _, acct := range m.accounts {
		acct.IsDefault = acct.Name == name
	}
	return m.persist()
}

// Default returns the default account, or nil if none.
func (m *Manager) Default() *Account {
	m.load() //nolint:errcheck
	for _, acct := range m.accounts {
		if acct.IsDefault {
			return acct
		}
	}
	if len(m.accounts) == 1 {
		for _, acct := range m.accounts {
			return acct
		}
	}
	return nil
}

// --- internal ---

func (m *Manager) load() error {
	if m.loaded {
		return nil
	}
	accounts, err := m.store.Load()
	if err != nil {
		return err
	}
	for _, acct := range accounts {
		m.accounts[acct.Name] = acct
	}
	m.loaded = true
	return nil
}

func (m *Manager) persist() error {
	accounts := make([]*Account, 0, len(m.accounts))
	for _, acct := range m.accounts {
		accounts = append(accounts, acct)
	}
	return m.store.Save(accounts)
}

func stripHexPrefix(s string) string {
	if len(s) >= 2 && s[:2] == "0x" {
		return s[2:]
	}
	return s
}

// --- in-memory store ---

type memStore struct {
	accounts []*Account
}

func (s *memStore) Load() ([]*Account, error) {
	return s.accounts, nil
}

func (s *memStore) Save(accounts []*Account) error {
	s.accounts = accounts
	return nil
}

// --- JSON file store ---

// JSONStore persists accounts to a JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON-backed account store.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() ([]*Account, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var accounts []*Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *JSONStore) Save(accounts []*Account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
