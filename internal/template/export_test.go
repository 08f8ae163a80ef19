package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAll(t *testing.T) {
	s := testStore(t)
	s.Save(Template{Name: "a"})
	s.Save(Template{Name: "b"})

	file, err := s.Export(nil)
	require.NoError(t, err)
	assert.Equal(t, ExportVersion, file.Version)
	assert.NotEmpty(t, file.ExportedAt)
	require.Len(t, file.Templates, 2)
}

func TestExportSelection(t *testing.T) {
	s := testStore(t)
	a, _ := s.Save(Template{Name: "a"})
	s.Save(Template{Name: "b"})

	file, err := s.Export([]string{a.ID, "b"})
	require.NoError(t, err)
	require.Len(t, file.Templates, 2)

	_, err = s.Export([]string{"missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestImportShapes(t *testing.T) {
	t.Run("export wrapper", func(t *testing.T) {
		s := testStore(t)
		blob := `{"version":1,"exportedAt":"2026-08-01T00:00:00Z","templates":[{"name":"a"},{"name":"b"}]}`
		added, err := s.Import([]byte(blob))
		require.NoError(t, err)
		assert.Len(t, added, 2)
		assert.Len(t, s.Load(), 2)
	})

	t.Run("bare list", func(t *testing.T) {
		s := testStore(t)
		added, err := s.Import([]byte(`[{"name":"a"}]`))
		require.NoError(t, err)
		assert.Len(t, added, 1)
	})

	t.Run("single object", func(t *testing.T) {
		s := testStore(t)
		added, err := s.Import([]byte(`{"name":"solo"}`))
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.Equal(t, "solo", added[0].Name)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		s := testStore(t)
		_, err := s.Import([]byte(`"just a string"`))
		require.Error(t, err)
	})
}

func TestImportRegeneratesCollidingIDs(t *testing.T) {
	s := testStore(t)
	existing, _ := s.Save(Template{Name: "original"})

	blob, _ := json.Marshal([]Template{{ID: existing.ID, Name: "incoming"}})
	added, err := s.Import(blob)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.NotEqual(t, existing.ID, added[0].ID)
	assert.Equal(t, "incoming", added[0].Name)
	assert.Len(t, s.Load(), 2)
}

func TestImportDropsNamelessEntries(t *testing.T) {
	s := testStore(t)

	added, err := s.Import([]byte(`[{"name":""},{"name":"kept"}]`))
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "kept", added[0].Name)

	_, err = s.Import([]byte(`[{"name":""}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable templates")
}

func TestImportCoercesDraftShapes(t *testing.T) {
	s := testStore(t)

	blob := `[{"name":"partial","methodStates":{"write:set(uint256)":{"tupleArrays":{"rows":[{}]}}}}]`
	added, err := s.Import([]byte(blob))
	require.NoError(t, err)
	require.Len(t, added, 1)

	state := added[0].MethodStates["write:set(uint256)"]
	assert.NotNil(t, state.Values)
	assert.NotNil(t, state.Exponents)
	require.Len(t, state.TupleArrays["rows"], 1)
	assert.NotNil(t, state.TupleArrays["rows"][0].Values)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := testStore(t)
	src.Save(Template{Name: "round-trip"})
	file, err := src.Export(nil)
	require.NoError(t, err)

	blob, err := json.Marshal(file)
	require.NoError(t, err)

	dst := testStore(t)
	added, err := dst.Import(blob)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "round-trip", added[0].Name)

	got, err := dst.Get("round-trip")
	require.NoError(t, err)
	assert.NotEmpty(t, got.CreatedAt)
}
