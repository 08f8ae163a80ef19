package template

import (
	"encoding/json"
	"fmt"
)

// ExportVersion tags exported files so later formats stay recognizable.
const ExportVersion = 1

// ExportFile is the on-disk shape of an exported template bundle.
type ExportFile struct {
	Version    int        `json:"version"`
	ExportedAt string     `json:"exportedAt"`
	Templates  []Template `json:"templates"`
}

// Export bundles the chosen templates (by id or name; empty selection
// means all) into an export file.
func (s *Store) Export(idsOrNames []string) (ExportFile, error) {
	list := s.Load()

	var picked []Template
	if len(idsOrNames) == 0 {
		picked = list
	} else {
		for _, want := range idsOrNames {
			found := false
			for _, t := range list {
				if t.ID == want || t.Name == want {
					picked = append(picked, t)
					found = true
					break
				}
			}
			if !found {
				return ExportFile{}, fmt.Errorf("template not found: %s", want)
			}
		}
	}

	return ExportFile{
		Version:    ExportVersion,
		ExportedAt: s.timestamp(),
		Templates:  picked,
	}, nil
}

// Import merges templates from a JSON blob into the store. The blob may be
// a single template object, a bare list, or an export wrapper. Every entry
// is sanitized: entries without a name are dropped, missing ids filled,
// draft shapes coerced. Id collisions against the existing store (or
// within the batch) regenerate the incoming id; names and timestamps are
// preserved. Returns the templates actually added.
func (s *Store) Import(data []byte) ([]Template, error) {
	incoming, err := decodeImport(data)
	if err != nil {
		return nil, err
	}

	list := s.Load()
	taken := make(map[string]bool, len(list))
	for _, t := range list {
		taken[t.ID] = true
	}

	now := s.timestamp()
	var added []Template
	for _, t := range incoming {
		t, ok := sanitize(t)
		if !ok {
			continue
		}
		if t.ID == "" || taken[t.ID] {
			t.ID = s.newID()
		}
		taken[t.ID] = true
		if t.CreatedAt == "" {
			t.CreatedAt = now
		}
		if t.UpdatedAt == "" {
			t.UpdatedAt = now
		}
		list = append(list, t)
		added = append(added, t)
	}

	if len(added) == 0 {
		return nil, fmt.Errorf("no usable templates in import file")
	}
	return added, s.write(list)
}

// decodeImport accepts the three shapes an import file can take.
func decodeImport(data []byte) ([]Template, error) {
	var wrapper ExportFile
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Templates) > 0 {
		return wrapper.Templates, nil
	}

	var list []Template
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var single Template
	if err := json.Unmarshal(data, &single); err == nil && single.Name != "" {
		return []Template{single}, nil
	}

	return nil, fmt.Errorf("not a template file: expected a template object, a list, or an export bundle")
}
