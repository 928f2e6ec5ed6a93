package resolver

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-qrgen/internal/ids"
	"github.com/goliatone/go-qrgen/pkg/backend"
	"github.com/goliatone/go-qrgen/pkg/metrics"
	"github.com/goliatone/go-qrgen/pkg/remote"
	"github.com/goliatone/go-qrgen/pkg/render"
)

// Option customises the resolver configuration.
type Option func(*Resolver)

// WithLibrary injects the local backend library. Defaults to backend.Shared.
func WithLibrary(library *backend.Library) Option {
	return func(r *Resolver) {
		if library != nil {
			r.library = library
		}
	}
}

// WithServices overrides the first and second remote fallbacks.
func WithServices(primary, secondary render.Service) Option {
	return func(r *Resolver) {
		if primary != nil {
			r.primary = primary
		}
		if secondary != nil {
			r.secondary = secondary
		}
	}
}

// WithImageLoader injects how remote image sources are loaded.
func WithImageLoader(loader remote.ImageLoader) Option {
	return func(r *Resolver) {
		if loader != nil {
			r.images = loader
		}
	}
}

// WithLogger sets the logger used to report recovered failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records outcomes on recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(r *Resolver) {
		r.metrics = recorder
	}
}

// Resolver renders payloads into a single target.
type Resolver struct {
	target    *render.Target
	library   *backend.Library
	primary   render.Service
	secondary render.Service
	images    remote.ImageLoader
	style     backend.Style
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// New constructs a Resolver for target. Missing dependencies default to the
// shared go-qrcode library, Google Charts then QR Server, and plain HTTP
// image loads.
func New(target *render.Target, options ...Option) *Resolver {
	r := &Resolver{
		target: target,
		style:  backend.DefaultStyle(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.applyDefaults()
	return r
}

func (r *Resolver) applyDefaults() {
	if r.target == nil {
		r.target = render.NewTarget()
	}
	if r.library == nil {
		r.library = backend.Shared()
	}
	if r.primary == nil {
		r.primary = remote.GoogleCharts{}
	}
	if r.secondary == nil {
		r.secondary = remote.QRServer{}
	}
	if r.images == nil {
		r.images = remote.NewHTTPImageLoader(nil)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Target returns the surface this resolver renders into.
func (r *Resolver) Target() *render.Target {
	return r.target
}

// Render starts a render call for value. The target is cleared before
// anything else happens. When the local backend is already loaded the local
// draw happens before Render returns; otherwise the load runs in the
// background. Remote image loads always run in the background. Background
// work keeps the values of ctx but ignores its cancellation.
func (r *Resolver) Render(ctx context.Context, value string) *Pending {
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	p := newPending(ids.NewRenderID(started), value, started)
	generation := r.target.Clear()
	log := r.logger.With("render_id", p.ID())

	if strings.TrimSpace(value) == "" {
		r.finish(p, StageEmpty, nil)
		return p
	}

	if b, err := r.library.Backend(); err == nil {
		r.renderLocal(ctx, log, p, generation, b)
		return p
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		b, err := r.library.Ensure(ctx)
		if err != nil {
			log.Warn("local backend unavailable, using remote fallback", "error", err)
			r.fallback(ctx, log, p, generation, err)
			return
		}
		r.renderLocal(ctx, log, p, generation, b)
	}()
	return p
}

func (r *Resolver) renderLocal(ctx context.Context, log *slog.Logger, p *Pending, generation uint64, b backend.Backend) {
	img, err := drawSafely(b, p.value, r.style)
	if err != nil {
		log.Error("error creating QR code", "error", err)
		r.fallback(ctx, log, p, generation, err)
		return
	}

	canvas := render.NewCanvas(p.value, img)
	if !r.target.AttachIf(generation, canvas) {
		r.finish(p, StageSuperseded, nil)
		return
	}
	r.finish(p, StageLocal, canvas)
}

func (r *Resolver) fallback(ctx context.Context, log *slog.Logger, p *Pending, generation uint64, cause error) {
	p.setLocalErr(cause)

	el := render.NewImageElement(p.value, r.primary.URL(p.value))
	if !r.target.AttachIf(generation, el) {
		r.finish(p, StageSuperseded, nil)
		return
	}
	go r.watch(context.WithoutCancel(ctx), log, p, generation, el)
}

// watch plays the element's load/error events: an error on the first
// source rewrites the same element to the second service, and an error there
// leaves it broken. The loads outlive the caller's cancellation. Once a newer
// call has cleared the target the element is detached and the call settles
// as superseded.
func (r *Resolver) watch(ctx context.Context, log *slog.Logger, p *Pending, generation uint64, el *render.ImageElement) {
	err := r.images.Load(ctx, el.Src())
	r.metrics.ObserveImage(r.primary.Name(), err)
	if r.superseded(generation) {
		r.finish(p, StageSuperseded, nil)
		return
	}
	if err == nil {
		el.MarkLoaded()
		r.finish(p, StagePrimary, el)
		return
	}
	log.Warn("fallback image failed, switching service",
		"service", r.primary.Name(), "next", r.secondary.Name(), "error", err)

	el.SetSrc(r.secondary.URL(p.value))
	err = r.images.Load(ctx, el.Src())
	r.metrics.ObserveImage(r.secondary.Name(), err)
	if r.superseded(generation) {
		r.finish(p, StageSuperseded, nil)
		return
	}
	if err != nil {
		log.Debug("fallback image failed", "service", r.secondary.Name(), "error", err)
		el.MarkBroken()
		r.finish(p, StageBroken, el)
		return
	}
	el.MarkLoaded()
	r.finish(p, StageSecondary, el)
}

func (r *Resolver) superseded(generation uint64) bool {
	return r.target.Generation() != generation
}

func (r *Resolver) finish(p *Pending, stage Stage, artifact render.Artifact) {
	r.metrics.ObserveRender(string(stage))
	p.settle(stage, artifact)
}

func drawSafely(b backend.Backend, value string, style backend.Style) (img image.Image, err error) {
	if b == nil {
		return nil, backend.ErrNotLoaded
	}
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("resolver: local backend panicked: %v", rec)
		}
	}()
	img, err = b.Render(value, style)
	if err == nil && img == nil {
		err = errors.New("resolver: local backend returned no image")
	}
	return img, err
}
