package template

import (
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/config"
)

// RowDraft is the form state of one tuple-array row: leaf values and
// decimal exponents keyed by root-relative path.
type RowDraft struct {
	Values    map[string]string `json:"values"`
	Exponents map[string]int    `json:"exponents"`
}

// MethodDraft is the in-progress form state for one function.
type MethodDraft struct {
	Values       map[string]string     `json:"values"`
	Exponents    map[string]int        `json:"exponents"`
	TupleArrays  map[string][]RowDraft `json:"tupleArrays"`
	PayableValue string                `json:"payableValue,omitempty"`
}

// NewMethodDraft returns an empty draft with all maps allocated.
func NewMethodDraft() MethodDraft {
	return MethodDraft{
		Values:      make(map[string]string),
		Exponents:   make(map[string]int),
		TupleArrays: make(map[string][]RowDraft),
	}
}

// Template is a named, timestamped bundle of panel configuration and
// per-method form drafts. MethodStates is keyed by the method storage key
// "<read|write>:<name>(<types>)".
type Template struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Panel        config.Panel           `json:"panel"`
	MethodStates map[string]MethodDraft `json:"methodStates"`
	CreatedAt    string                 `json:"createdAt"`
	UpdatedAt    string                 `json:"updatedAt"`
}

// sanitize coerces an imported template into a consistent shape. Returns
// false when the entry is unusable (empty name). Missing ids are filled by
// the caller, which owns id generation.
func sanitize(t Template) (Template, bool) {
	if t.Name == "" {
		return t, false
	}
	if t.MethodStates == nil {
		t.MethodStates = make(map[string]MethodDraft)
	}
	for key, draft := range t.MethodStates {
		if draft.Values == nil {
			draft.Values = make(map[string]string)
		}
		if draft.Exponents == nil {
			draft.Exponents = make(map[string]int)
		}
		if draft.TupleArrays == nil {
			draft.TupleArrays = make(map[string][]RowDraft)
		}
		for path, rows := range draft.TupleArrays {
			for i, row := range rows {
				if row.Values == nil {
					row.Values = make(map[string]string)
				}
				if row.Exponents == nil {
					row.Exponents = make(map[string]int)
				}
				rows[i] = row
			}
			draft.TupleArrays[path] = rows
		}
		t.MethodStates[key] = draft
	}
	return t, true
}
