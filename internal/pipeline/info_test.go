package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadItemMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"title": "ΧΑΡΗΣ ΑΛΕΞΙΟΥ - Συναυλία",
		"uploader": "Κανάλι Λαϊκών",
		"webpage_url": "https://example.invalid/watch?v=abc",
		"upload_date": "19820315",
		"description": "0:00 Intro\n3:15 Όλα σε θυμίζουν",
		"duration": 400.2
	}`), 0o644))

	meta, err := LoadItemMeta(path)
	require.NoError(t, err)
	require.Equal(t, "ΧΑΡΗΣ ΑΛΕΞΙΟΥ - Συναυλία", meta.Title)
	require.Equal(t, "Κανάλι Λαϊκών", meta.Uploader)
	require.Equal(t, "https://example.invalid/watch?v=abc", meta.URL)
	require.Equal(t, "19820315", meta.UploadDate)
	require.Equal(t, 400, meta.Duration)
	require.Contains(t, meta.Description, "3:15")
}

func TestLoadItemMetaMissingFile(t *testing.T) {
	meta, err := LoadItemMeta(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Zero(t, meta)
}

func TestLoadItemMetaMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := LoadItemMeta(path)
	require.Error(t, err)
}
