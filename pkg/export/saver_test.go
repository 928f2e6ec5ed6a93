package export_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-qrgen/pkg/export"
	"github.com/goliatone/go-qrgen/pkg/render"
)

func TestFileSaverWritesRasterData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	saver := export.NewFileSaver(dir, nil)

	path, err := saver.Save(context.Background(), render.Export{
		Filename: render.Filename("text"),
		Data:     []byte("raster"),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join(dir, "qr-code-text.png") {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "raster" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestFileSaverFetchesSourceReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("remote-" + r.URL.Query().Get("data")))
	}))
	defer srv.Close()

	saver := export.NewFileSaver(t.TempDir(), srv.Client())
	path, err := saver.Save(context.Background(), render.Export{
		Filename:  render.Filename("url"),
		SourceURL: srv.URL + "/?data=abc",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "remote-abc" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestFileSaverRejectsEmptyExport(t *testing.T) {
	saver := export.NewFileSaver(t.TempDir(), nil)
	_, err := saver.Save(context.Background(), render.Export{Filename: "qr-code-url.png"})
	if !errors.Is(err, render.ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact, got %v", err)
	}
}
