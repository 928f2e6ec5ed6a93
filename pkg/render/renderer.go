package render

import (
	"image"
	"sync"
)

// ArtifactKind names the concrete artifact attached to a surface.
type ArtifactKind string

const (
	// ArtifactCanvas is a raster drawn locally.
	ArtifactCanvas ArtifactKind = "canvas"
	// ArtifactImage is an image element sourced from a remote service.
	ArtifactImage ArtifactKind = "image"
)

// Artifact is the visual output attached to a Target.
type Artifact interface {
	Kind() ArtifactKind
	// Payload returns the string the artifact encodes.
	Payload() string
}

// Canvas is a locally rendered raster.
type Canvas struct {
	Value string
	Image image.Image
}

// NewCanvas wraps a rendered image.
func NewCanvas(value string, img image.Image) *Canvas {
	return &Canvas{Value: value, Image: img}
}

func (c *Canvas) Kind() ArtifactKind { return ArtifactCanvas }

func (c *Canvas) Payload() string { return c.Value }

// ImageState tracks the load/error events of an ImageElement.
type ImageState int

const (
	ImageLoading ImageState = iota
	ImageLoaded
	ImageBroken
)

func (s ImageState) String() string {
	switch s {
	case ImageLoaded:
		return "loaded"
	case ImageBroken:
		return "broken"
	default:
		return "loading"
	}
}

// DefaultImageAlt is the alt text carried by fallback image elements.
const DefaultImageAlt = "Generated QR Code"

// ImageElement is an image whose source points at a remote service. Its
// source may be rewritten in place after an error event, so it is safe for
// concurrent use.
type ImageElement struct {
	mu    sync.RWMutex
	value string
	src   string
	alt   string
	state ImageState
}

// NewImageElement creates an element in the loading state.
func NewImageElement(value, src string) *ImageElement {
	return &ImageElement{value: value, src: src, alt: DefaultImageAlt}
}

func (e *ImageElement) Kind() ArtifactKind { return ArtifactImage }

func (e *ImageElement) Payload() string { return e.value }

// Src returns the current source URL.
func (e *ImageElement) Src() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.src
}

// Alt returns the element's alt text.
func (e *ImageElement) Alt() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.alt
}

// State returns the element's load state.
func (e *ImageElement) State() ImageState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// SetSrc rewrites the source and puts the element back into loading.
func (e *ImageElement) SetSrc(src string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.src = src
	e.state = ImageLoading
}

// MarkLoaded records a load event for the current source.
func (e *ImageElement) MarkLoaded() {
	e.setState(ImageLoaded)
}

// MarkBroken records a terminal error event for the current source.
func (e *ImageElement) MarkBroken() {
	e.setState(ImageBroken)
}

func (e *ImageElement) setState(state ImageState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
}
