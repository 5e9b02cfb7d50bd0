// Package hub downloads GGUF model weights from the Hugging Face hub and
// lists what is already available locally.
package hub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://huggingface.co"

// Model describes one locally stored GGUF file.
type Model struct {
	Name string
	Size int64
}

// Downloader fetches model files over HTTP.
type Downloader struct {
	BaseURL string
	Client  *http.Client
	log     *zap.Logger
}

// NewDownloader returns a Downloader pointed at the Hugging Face hub.
// Downloads have no overall timeout; multi-gigabyte files take as long as
// they take.
func NewDownloader(log *zap.Logger) *Downloader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Downloader{
		BaseURL: defaultBaseURL,
		Client:  &http.Client{},
		log:     log,
	}
}

// Download streams repo/filename into destDir and returns the final path.
// The file is written under a temporary name and renamed on completion, so
// an interrupted download never leaves a plausible-looking model behind.
func (d *Downloader) Download(ctx context.Context, repo, filename, destDir string) (string, error) {
	url := fmt.Sprintf("%s/%s/resolve/main/%s", d.BaseURL, repo, filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	d.log.Info("downloading model", zap.String("repo", repo), zap.String("file", filename))
	start := time.Now()

	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	dest := filepath.Join(destDir, filename)
	partial := dest + ".partial"

	out, err := os.Create(partial)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", partial, err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("write %s: %w", partial, err)
	}

	if err := os.Rename(partial, dest); err != nil {
		return "", fmt.Errorf("finalize download: %w", err)
	}

	d.log.Info("download complete",
		zap.String("path", dest),
		zap.Int64("bytes", written),
		zap.Duration("took", time.Since(start)))
	return dest, nil
}

// List returns the GGUF models present in a directory, sorted by name.
func List(modelsDir string) ([]Model, error) {
	matches, err := filepath.Glob(filepath.Join(modelsDir, "*.gguf"))
	if err != nil {
		return nil, err
	}

	var models []Model
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		models = append(models, Model{Name: filepath.Base(path), Size: info.Size()})
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}
