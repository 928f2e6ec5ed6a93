package orchestrator

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-qrgen/pkg/backend"
	"github.com/goliatone/go-qrgen/pkg/metrics"
	"github.com/goliatone/go-qrgen/pkg/payload"
	"github.com/goliatone/go-qrgen/pkg/remote"
	"github.com/goliatone/go-qrgen/pkg/render"
)

// DefaultCopiedDuration is how long the copied acknowledgment stays up.
const DefaultCopiedDuration = 2 * time.Second

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTarget renders into target instead of a private one.
func WithTarget(target *render.Target) Option {
	return func(o *Orchestrator) {
		o.target = target
	}
}

// WithLibrary injects the local backend library.
func WithLibrary(library *backend.Library) Option {
	return func(o *Orchestrator) {
		o.library = library
	}
}

// WithServices overrides the two remote fallback services, in order.
func WithServices(primary, secondary render.Service) Option {
	return func(o *Orchestrator) {
		o.primary = primary
		o.secondary = secondary
	}
}

// WithImageLoader injects how remote image sources are loaded.
func WithImageLoader(loader remote.ImageLoader) Option {
	return func(o *Orchestrator) {
		o.images = loader
	}
}

// WithClipboard injects the clipboard used by CopyToClipboard.
func WithClipboard(clipboard Clipboard) Option {
	return func(o *Orchestrator) {
		o.clipboard = clipboard
	}
}

// WithSaver injects where Download writes files.
func WithSaver(saver Saver) Option {
	return func(o *Orchestrator) {
		o.saver = saver
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithMetrics records render, remote image and clipboard outcomes on
// recorder. Backend loads are counted by the library itself, see
// backend.WithLoadObserver.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(o *Orchestrator) {
		o.metrics = recorder
	}
}

// WithCopiedDuration overrides how long Copied reports true after a copy.
func WithCopiedDuration(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.copiedFor = d
		}
	}
}

// WithInitialKind selects the payload kind the form starts on.
func WithInitialKind(kind payload.Kind) Option {
	return func(o *Orchestrator) {
		if kind.Valid() {
			o.state.Kind = kind
		}
	}
}
