package export

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goliatone/go-qrgen/pkg/remote"
	"github.com/goliatone/go-qrgen/pkg/render"
)

// FileSaver writes exports into Dir. Exports carrying only a source reference
// are fetched with Client first.
type FileSaver struct {
	Dir    string
	Client *http.Client
}

// NewFileSaver returns a saver for dir (the working directory when empty)
// using client, or http.DefaultClient.
func NewFileSaver(dir string, client *http.Client) *FileSaver {
	if client == nil {
		client = http.DefaultClient
	}
	return &FileSaver{Dir: dir, Client: client}
}

// Save writes export and returns the written path.
func (s *FileSaver) Save(ctx context.Context, export render.Export) (string, error) {
	if export.Filename == "" {
		return "", errors.New("export: filename is required")
	}

	data := export.Data
	if len(data) == 0 {
		if export.SourceURL == "" {
			return "", fmt.Errorf("export: %s: %w", export.Filename, render.ErrNoArtifact)
		}
		client := s.Client
		if client == nil {
			client = http.DefaultClient
		}
		fetched, err := remote.Fetch(ctx, client, export.SourceURL)
		if err != nil {
			return "", fmt.Errorf("export: fetch %s: %w", export.SourceURL, err)
		}
		data = fetched
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(export.Filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}
