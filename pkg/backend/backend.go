package backend

import (
	"context"
	"errors"
	"image"
)

// Level is a QR error-correction level.
type Level string

const (
	LevelLow     Level = "L"
	LevelMedium  Level = "M"
	LevelQuart   Level = "Q"
	LevelHighest Level = "H"
)

const (
	// DefaultSize is the edge length of the rendered square, in pixels.
	DefaultSize = 300
	// DefaultBackground is the dark background colour.
	DefaultBackground = "#2c2e31"
	// DefaultForeground is the accent colour used for modules.
	DefaultForeground = "#e2b714"
)

var (
	// ErrNotLoaded is returned when the backend is used before a load
	// succeeded.
	ErrNotLoaded = errors.New("backend: not loaded")
	// ErrEmptyValue is returned when asked to render an empty string.
	ErrEmptyValue = errors.New("backend: value is required")
)

// Style is the fixed rendering configuration handed to a Backend.
type Style struct {
	Size       int
	Background string
	Foreground string
	Level      Level
}

// DefaultStyle returns the only style the application renders with.
func DefaultStyle() Style {
	return Style{
		Size:       DefaultSize,
		Background: DefaultBackground,
		Foreground: DefaultForeground,
		Level:      LevelMedium,
	}
}

// Backend draws a QR code synchronously.
type Backend interface {
	Render(value string, style Style) (image.Image, error)
}

// Loader makes a Backend available. Loads may block on I/O.
type Loader interface {
	Load(ctx context.Context) (Backend, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (Backend, error)

func (f LoaderFunc) Load(ctx context.Context) (Backend, error) {
	return f(ctx)
}
