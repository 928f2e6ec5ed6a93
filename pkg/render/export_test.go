package render_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qrgen/pkg/render"
)

func TestExportArtifactCanvas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 0xe2, G: 0xb7, B: 0x14, A: 0xff})

	export, err := render.ExportArtifact(render.NewCanvas("hello", img), "text")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.Filename != "qr-code-text.png" {
		t.Fatalf("unexpected filename %q", export.Filename)
	}
	if export.SourceURL != "" {
		t.Fatalf("canvas export must not carry a source url")
	}

	decoded, err := png.Decode(bytes.NewReader(export.Data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if diff := cmp.Diff(img.Bounds(), decoded.Bounds()); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestExportArtifactImageElement(t *testing.T) {
	el := render.NewImageElement("hello", "https://api.qrserver.test/?data=hello")

	export, err := render.ExportArtifact(el, "url")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	want := render.Export{
		Filename:    "qr-code-url.png",
		ContentType: "image/png",
		SourceURL:   "https://api.qrserver.test/?data=hello",
	}
	if diff := cmp.Diff(want, export); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportArtifactNil(t *testing.T) {
	if _, err := render.ExportArtifact(nil, "url"); !errors.Is(err, render.ErrNoArtifact) {
		t.Fatalf("expected ErrNoArtifact, got %v", err)
	}
}

func TestMarkup(t *testing.T) {
	target := render.NewTarget()

	out, err := render.Markup(target)
	if err != nil || out != "" {
		t.Fatalf("expected empty markup for empty target, got %q (%v)", out, err)
	}

	target.Attach(render.NewImageElement("x", `https://chart.example.test/chart?chl=%22%3E%3Cscript%3E`))
	out, err = render.Markup(target)
	if err != nil {
		t.Fatalf("markup: %v", err)
	}
	if !strings.Contains(out, `class="qr-image"`) || !strings.Contains(out, "chart.example.test/chart") {
		t.Fatalf("unexpected image markup %q", out)
	}
	if strings.Contains(out, "<script") {
		t.Fatalf("markup must not contain script elements: %q", out)
	}

	target.Attach(render.NewCanvas("x", image.NewRGBA(image.Rect(0, 0, 2, 2))))
	out, err = render.Markup(target)
	if err != nil {
		t.Fatalf("markup: %v", err)
	}
	if !strings.Contains(out, `class="qr-canvas"`) || !strings.Contains(out, "data:image/png;base64,") {
		t.Fatalf("unexpected canvas markup %q", out)
	}
}
