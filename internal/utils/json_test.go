package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON(t *testing.T) {
	t.Run("loads valid JSON file successfully", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "test.json")
		require.NoError(t, os.WriteFile(jsonFile, []byte(`{"name": "test", "value": 42}`), 0600))

		var result struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}
		require.NoError(t, LoadJSON(jsonFile, &result))
		assert.Equal(t, "test", result.Name)
		assert.Equal(t, 42, result.Value)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		var result map[string]interface{}
		err := LoadJSON("/nonexistent/path/file.json", &result)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "invalid.json")
		require.NoError(t, os.WriteFile(jsonFile, []byte(`{invalid json}`), 0600))

		var result map[string]interface{}
		err := LoadJSON(jsonFile, &result)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal JSON")
	})
}

func TestReadFileIfExists(t *testing.T) {
	dir := t.TempDir()

	data, err := ReadFileIfExists(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, data)

	path := filepath.Join(dir, "present.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))
	data, err = ReadFileIfExists(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("replaces contents and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "players.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), 0600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("fails for a missing directory", func(t *testing.T) {
		err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "x.json"), []byte("x"), 0600)
		assert.Error(t, err)
	})
}
