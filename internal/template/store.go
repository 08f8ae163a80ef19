package template

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Store persists templates as one JSON list in a single file. Every write
// is a full read-modify-write of the whole list; concurrent writers race
// and the last one wins, mirroring how browser local storage behaves.
type Store struct {
	path string

	// injectable for deterministic tests
	now   func() time.Time
	newID func() string
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load reads all templates. Missing or corrupt data yields an empty list,
// never an error: a broken store must not take the dashboard down.
func (s *Store) Load() []Template {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var list []Template
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	return list
}

// Save inserts or updates a template and persists the full list. An
// existing template is matched by id, or by name when no id is given, and
// keeps its CreatedAt while UpdatedAt refreshes. Anything else is inserted
// with a generated id and both timestamps. Returns the stored form.
func (s *Store) Save(t Template) (Template, error) {
	if t.Name == "" {
		return t, fmt.Errorf("template name must not be empty")
	}
	t, _ = sanitize(t)

	list := s.Load()
	now := s.timestamp()

	for i := range list {
		if matches(list[i], t) {
			t.ID = list[i].ID
			t.CreatedAt = list[i].CreatedAt
			t.UpdatedAt = now
			list[i] = t
			return t, s.write(list)
		}
	}

	t.ID = s.newID()
	t.CreatedAt = now
	t.UpdatedAt = now
	list = append(list, t)
	return t, s.write(list)
}

// matches decides whether incoming overwrites stored: by id when incoming
// carries one, otherwise by name.
func matches(stored, incoming Template) bool {
	if incoming.ID != "" {
		return stored.ID == incoming.ID
	}
	return stored.Name == incoming.Name
}

// Delete removes a template by id. Unknown ids are an error; deletion is
// irreversible.
func (s *Store) Delete(id string) error {
	list := s.Load()
	for i := range list {
		if list[i].ID == id {
			return s.write(append(list[:i], list[i+1:]...))
		}
	}
	return fmt.Errorf("template not found: %s", id)
}

// Get returns a template by id or name.
func (s *Store) Get(idOrName string) (Template, error) {
	for _, t := range s.Load() {
		if t.ID == idOrName || t.Name == idOrName {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("template not found: %s", idOrName)
}

func (s *Store) write(list []Template) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
