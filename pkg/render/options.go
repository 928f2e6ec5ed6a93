package render

import (
	"bytes"
	"fmt"
	"image/png"
)

// Export is a downloadable representation of an artifact. Canvas artifacts
// export raster Data; image elements export a SourceURL reference.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	SourceURL   string
}

// Filename returns the download name for a payload kind.
func Filename(kind string) string {
	return "qr-code-" + kind + ".png"
}

// ExportArtifact builds the download for whatever artifact is attached.
func ExportArtifact(artifact Artifact, kind string) (Export, error) {
	out := Export{
		Filename:    Filename(kind),
		ContentType: "image/png",
	}

	switch typed := artifact.(type) {
	case nil:
		return Export{}, ErrNoArtifact
	case *Canvas:
		if typed.Image == nil {
			return Export{}, fmt.Errorf("render: export canvas: %w", ErrNoArtifact)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, typed.Image); err != nil {
			return Export{}, fmt.Errorf("render: encode canvas: %w", err)
		}
		out.Data = buf.Bytes()
	case *ImageElement:
		out.SourceURL = typed.Src()
	default:
		return Export{}, fmt.Errorf("%w: %s", ErrUnsupportedArtifact, artifact.Kind())
	}
	return out, nil
}
