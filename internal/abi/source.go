package abi

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFromFile loads an ABI from a local file that is either:
//   - a raw ABI JSON array: [{"type":"function",...}, ...]
//   - a Hardhat/Foundry artifact: {"abi":[...],"bytecode":"0x...",...}
//
// Both formats are detected automatically. The returned text is always the
// raw ABI array, with any artifact wrapper stripped.
func LoadFromFile(path string) ([]Entry, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("cannot read ABI file: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("ABI file is empty: %s", path)
	}

	return parseAny(data, path)
}

// unwrapArtifact detects a Hardhat/Foundry artifact (object with an "abi"
// key) and returns the inner ABI array.
func unwrapArtifact(data []byte) ([]byte, bool) {
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 1 && artifact.ABI[0] == '[' {
		return artifact.ABI, true
	}
	return nil, false
}

// validate checks that the parsed ABI has at least one function or event.
func validate(abi []Entry, path string) error {
	if len(abi) == 0 {
		return fmt.Errorf("ABI is empty (no functions or events found): %s", path)
	}
	for _, e := range abi {
		if e.Type == "function" || e.Type == "event" || e.Type == "constructor" {
			return nil
		}
	}
	return fmt.Errorf("ABI has %d entries but none are functions or events — check the file format: %s", len(abi), path)
}
