package backend

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"golang.org/x/image/draw"
)

const (
	moduleWidth = 8
	borderWidth = 16
)

// QRCode renders with github.com/yeqown/go-qrcode and scales the result to
// exactly Style.Size.
type QRCode struct{}

// QRCodeLoader returns a loader that verifies the encoder with a trial
// render before handing it out.
func QRCodeLoader() Loader {
	return LoaderFunc(func(ctx context.Context) (Backend, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		backend := QRCode{}
		if _, err := backend.Render("qrgen", DefaultStyle()); err != nil {
			return nil, fmt.Errorf("backend: trial render: %w", err)
		}
		return backend, nil
	})
}

// Render encodes value and returns a Size x Size image.
func (QRCode) Render(value string, style Style) (image.Image, error) {
	if value == "" {
		return nil, ErrEmptyValue
	}
	if style.Size <= 0 {
		return nil, fmt.Errorf("backend: invalid size %d", style.Size)
	}

	qrc, err := qrcode.NewWith(value, levelOption(style.Level))
	if err != nil {
		return nil, fmt.Errorf("backend: encode: %w", err)
	}

	var buf bytes.Buffer
	w := standard.NewWithWriter(nopCloser{Writer: &buf},
		standard.WithBgColorRGBHex(style.Background),
		standard.WithFgColorRGBHex(style.Foreground),
		standard.WithQRWidth(moduleWidth),
		standard.WithBorderWidth(borderWidth),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("backend: draw: %w", err)
	}

	src, _, err := image.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("backend: decode: %w", err)
	}
	return scale(src, style.Size), nil
}

func levelOption(level Level) qrcode.EncodeOption {
	switch level {
	case LevelLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQuart:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelHighest:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
}

func scale(src image.Image, size int) image.Image {
	if b := src.Bounds(); b.Dx() == size && b.Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
