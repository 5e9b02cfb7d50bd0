package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Qwen/Test-GGUF/resolve/main/model.gguf", r.URL.Path)
		w.Write([]byte("weights"))
	}))
	defer srv.Close()

	d := NewDownloader(nil)
	d.BaseURL = srv.URL

	dir := t.TempDir()
	path, err := d.Download(context.Background(), "Qwen/Test-GGUF", "model.gguf", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "weights", string(content))

	// no partial file left behind
	_, err = os.Stat(path + ".partial")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	d := NewDownloader(nil)
	d.BaseURL = srv.URL

	_, err := d.Download(context.Background(), "nope/nope", "missing.gguf", t.TempDir())
	assert.ErrorContains(t, err, "unexpected status")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.gguf"), []byte("bb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.gguf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	models, err := List(dir)
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, "a.gguf", models[0].Name)
	assert.Equal(t, int64(1), models[0].Size)
	assert.Equal(t, "b.gguf", models[1].Name)
}

func TestListEmpty(t *testing.T) {
	models, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, models)
}
