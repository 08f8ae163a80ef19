package abi

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Entry is one ABI entry (function, event, etc.).
type Entry struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Inputs          []Param `json:"inputs"`
	Outputs         []Param `json:"outputs"`
	StateMutability string  `json:"stateMutability"`
}

// Param is a parameter in an ABI entry. Tuple and tuple-array parameters
// carry their child parameters in Components.
type Param struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Components []Param `json:"components,omitempty"`
}

// IsReadFunction returns true if the function is read-only (view/pure).
func (e Entry) IsReadFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "view" || e.StateMutability == "pure")
}

// IsWriteFunction returns true if the function modifies state.
func (e Entry) IsWriteFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "nonpayable" || e.StateMutability == "payable")
}

// IsPayable returns true if the function accepts an ETH value.
func (e Entry) IsPayable() bool {
	return e.StateMutability == "payable"
}

// IsTuple returns true for tuple and tuple-array parameters.
func (p Param) IsTuple() bool {
	return strings.HasPrefix(p.Type, "tuple")
}

// IsTupleArray returns true for repeatable tuple rows ("tuple[]", "tuple[3]").
func (p Param) IsTupleArray() bool {
	return p.IsTuple() && strings.Contains(p.Type, "[")
}

// IsArray returns true for array-typed parameters of any element type.
func (p Param) IsArray() bool {
	return strings.HasSuffix(p.Type, "]")
}

// CanonicalType expands tuples into "(type,type,...)" form, recursively,
// so that signatures and method keys are stable regardless of how the ABI
// spells its components.
func (p Param) CanonicalType() string {
	if !p.IsTuple() {
		return p.Type
	}
	parts := make([]string, len(p.Components))
	for i, c := range p.Components {
		parts[i] = c.CanonicalType()
	}
	// Preserve any array suffix: "tuple[]" → "(...)[]".
	suffix := strings.TrimPrefix(p.Type, "tuple")
	return "(" + strings.Join(parts, ",") + ")" + suffix
}

// Signature returns the canonical signature, e.g. "transfer(address,uint256)".
func (e Entry) Signature() string {
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.CanonicalType()
	}
	return e.Name + "(" + strings.Join(types, ",") + ")"
}

// Selector returns the 4-byte function selector as "0x"-prefixed hex.
func (e Entry) Selector() string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(e.Signature()))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// MethodKind distinguishes read from write functions in method keys.
type MethodKind string

const (
	KindRead  MethodKind = "read"
	KindWrite MethodKind = "write"
)

// Kind returns the method kind for a function entry.
func (e Entry) Kind() MethodKind {
	if e.IsWriteFunction() {
		return KindWrite
	}
	return KindRead
}

// MethodKey is the storage key for a function's form draft:
// "<read|write>:<name>(<comma-joined-input-types>)". Overloaded functions
// that share name and canonical input types collide; the last draft wins.
func (e Entry) MethodKey() string {
	return string(e.Kind()) + ":" + e.Signature()
}

// Parse parses a raw ABI JSON array into entries.
func Parse(data []byte) ([]Entry, error) {
	var abi []Entry
	if err := json.Unmarshal(data, &abi); err != nil {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			return nil, fmt.Errorf("ABI is a JSON object, not an array — if this is a Hardhat/Foundry artifact it must have an \"abi\" key")
		}
		return nil, fmt.Errorf("invalid ABI JSON: expected an array of function/event definitions, got parse error: %w", err)
	}
	return abi, nil
}

// ParseText parses pasted ABI text, tolerating surrounding whitespace.
func ParseText(text string) ([]Entry, error) {
	return Parse([]byte(strings.TrimSpace(text)))
}

// ReadFunctions returns the read-only functions in declaration order.
func ReadFunctions(abi []Entry) []Entry {
	var out []Entry
	for _, e := range abi {
		if e.IsReadFunction() {
			out = append(out, e)
		}
	}
	return out
}

// WriteFunctions returns the state-changing functions in declaration order.
func WriteFunctions(abi []Entry) []Entry {
	var out []Entry
	for _, e := range abi {
		if e.IsWriteFunction() {
			out = append(out, e)
		}
	}
	return out
}

// FindFunction returns the first function entry with the given name, or nil.
func FindFunction(abi []Entry, name string) *Entry {
	for i := range abi {
		if abi[i].Type == "function" && abi[i].Name == name {
			return &abi[i]
		}
	}
	return nil
}

// FindByKey returns the function entry whose MethodKey matches, or nil.
func FindByKey(abi []Entry, key string) *Entry {
	for i := range abi {
		if abi[i].Type == "function" && abi[i].MethodKey() == key {
			return &abi[i]
		}
	}
	return nil
}
