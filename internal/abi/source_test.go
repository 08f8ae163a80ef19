package abi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFileRawArray(t *testing.T) {
	path := writeFile(t, "abi.json", sampleABI)
	entries, text, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.Equal(t, sampleABI, text)
}

func TestLoadFromFileArtifact(t *testing.T) {
	artifact := `{"contractName":"Token","abi":` + sampleABI + `,"bytecode":"0x00"}`
	path := writeFile(t, "artifact.json", artifact)

	entries, text, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	// The wrapper is stripped; only the array is kept.
	assert.Equal(t, sampleABI, text)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
	t.Run("empty file", func(t *testing.T) {
		_, _, err := LoadFromFile(writeFile(t, "empty.json", ""))
		assert.ErrorContains(t, err, "empty")
	})
	t.Run("no functions", func(t *testing.T) {
		_, _, err := LoadFromFile(writeFile(t, "bare.json", `[{"type":"error","name":"Nope"}]`))
		assert.Error(t, err)
	})
	t.Run("object without abi key", func(t *testing.T) {
		_, _, err := LoadFromFile(writeFile(t, "obj.json", `{"foo":1}`))
		assert.ErrorContains(t, err, "artifact")
	})
}
