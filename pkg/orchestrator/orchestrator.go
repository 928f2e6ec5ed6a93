package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-qrgen/pkg/backend"
	"github.com/goliatone/go-qrgen/pkg/export"
	"github.com/goliatone/go-qrgen/pkg/metrics"
	"github.com/goliatone/go-qrgen/pkg/payload"
	"github.com/goliatone/go-qrgen/pkg/remote"
	"github.com/goliatone/go-qrgen/pkg/render"
	"github.com/goliatone/go-qrgen/pkg/resolver"
)

// Saver persists a download and returns where it went.
type Saver interface {
	Save(ctx context.Context, exp render.Export) (string, error)
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, exp render.Export) (string, error)

func (f SaverFunc) Save(ctx context.Context, exp render.Export) (string, error) {
	return f(ctx, exp)
}

// Orchestrator owns the form state. Every change recomputes the payload and
// starts a render; there is no debouncing, the resolver keeps only the latest
// call's artifact.
type Orchestrator struct {
	mu      sync.Mutex
	state   payload.FormState
	payload string
	last    *resolver.Pending

	target    *render.Target
	library   *backend.Library
	primary   render.Service
	secondary render.Service
	images    remote.ImageLoader
	resolver  *resolver.Resolver
	clipboard Clipboard
	saver     Saver
	logger    *slog.Logger
	metrics   *metrics.Recorder

	copiedFor  time.Duration
	copied     bool
	copiedGen  uint64
	copiedStop func() bool
}

// New constructs an Orchestrator applying any provided options. The form
// starts on the URL kind with every input empty; nothing is rendered until
// the first change or Refresh.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		state:     payload.FormState{Kind: payload.KindURL},
		copiedFor: DefaultCopiedDuration,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.target == nil {
		o.target = render.NewTarget()
	}
	if o.library == nil {
		o.library = backend.Shared()
	}
	if o.clipboard == nil {
		o.clipboard = SystemClipboard{}
	}
	if o.saver == nil {
		o.saver = export.NewFileSaver("", nil)
	}
	o.resolver = resolver.New(o.target,
		resolver.WithLibrary(o.library),
		resolver.WithServices(o.primary, o.secondary),
		resolver.WithImageLoader(o.images),
		resolver.WithLogger(o.logger),
		resolver.WithMetrics(o.metrics),
	)
}

// SetKind switches the payload kind.
func (o *Orchestrator) SetKind(ctx context.Context, kind payload.Kind) (*resolver.Pending, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("orchestrator: set kind %q: %w", kind, payload.ErrUnknownKind)
	}
	return o.update(ctx, func(s *payload.FormState) bool {
		if s.Kind == kind {
			return false
		}
		s.Kind = kind
		return true
	}), nil
}

// SetURL updates the URL input.
func (o *Orchestrator) SetURL(ctx context.Context, raw string) *resolver.Pending {
	return o.update(ctx, func(s *payload.FormState) bool {
		if s.URL == raw {
			return false
		}
		s.URL = raw
		return true
	})
}

// SetText updates the free text input.
func (o *Orchestrator) SetText(ctx context.Context, raw string) *resolver.Pending {
	return o.update(ctx, func(s *payload.FormState) bool {
		if s.Text == raw {
			return false
		}
		s.Text = raw
		return true
	})
}

// SetContact replaces the whole contact record.
func (o *Orchestrator) SetContact(ctx context.Context, record payload.ContactRecord) *resolver.Pending {
	return o.update(ctx, func(s *payload.FormState) bool {
		if s.Contact == record {
			return false
		}
		s.Contact = record
		return true
	})
}

// SetContactField updates one contact field by name.
func (o *Orchestrator) SetContactField(ctx context.Context, field, value string) (*resolver.Pending, error) {
	if _, err := (payload.ContactRecord{}).With(field, value); err != nil {
		return nil, fmt.Errorf("orchestrator: set contact field: %w", err)
	}
	return o.update(ctx, func(s *payload.FormState) bool {
		next, _ := s.Contact.With(field, value)
		if next == s.Contact {
			return false
		}
		s.Contact = next
		return true
	}), nil
}

// Reset empties the URL, text and contact inputs and re-renders, which
// clears the surface. The selected kind is kept.
func (o *Orchestrator) Reset(ctx context.Context) *resolver.Pending {
	return o.update(ctx, func(s *payload.FormState) bool {
		s.URL = ""
		s.Text = ""
		s.Contact = payload.ContactRecord{}
		return true
	})
}

// Refresh re-renders the current payload.
func (o *Orchestrator) Refresh(ctx context.Context) *resolver.Pending {
	return o.update(ctx, func(*payload.FormState) bool { return true })
}

// update applies mutate and renders when it reports a change. Renders are
// started under the lock so they reach the resolver in change order.
func (o *Orchestrator) update(ctx context.Context, mutate func(*payload.FormState) bool) *resolver.Pending {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !mutate(&o.state) && o.last != nil {
		return o.last
	}

	o.payload = payload.Derive(o.state)
	o.last = o.resolver.Render(ctx, o.payload)
	o.logger.Debug("payload changed",
		"kind", o.state.Kind,
		"render_id", o.last.ID(),
		"empty", o.payload == "")
	return o.last
}

// State returns a copy of the form state.
func (o *Orchestrator) State() payload.FormState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Kind returns the selected payload kind.
func (o *Orchestrator) Kind() payload.Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Kind
}

// Payload returns the current encodable payload.
func (o *Orchestrator) Payload() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.payload
}

// Last returns the most recent render call, or nil before the first one.
func (o *Orchestrator) Last() *resolver.Pending {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// Surface exposes the render target read-only.
func (o *Orchestrator) Surface() render.Surface {
	return o.target
}

// Markup returns the sanitised HTML fragment for the surface.
func (o *Orchestrator) Markup() (string, error) {
	return render.Markup(o.target)
}

// Download saves whatever artifact is attached as qr-code-<kind>.png. It is a
// no-op returning an empty path when the payload is empty.
func (o *Orchestrator) Download(ctx context.Context) (string, error) {
	o.mu.Lock()
	value, kind := o.payload, o.state.Kind
	o.mu.Unlock()

	if value == "" {
		return "", nil
	}

	artifact, ok := o.target.Current()
	if !ok {
		return "", fmt.Errorf("orchestrator: download: %w", render.ErrNoArtifact)
	}
	exported, err := render.ExportArtifact(artifact, kind.String())
	if err != nil {
		return "", fmt.Errorf("orchestrator: download: %w", err)
	}
	path, err := o.saver.Save(ctx, exported)
	if err != nil {
		return "", fmt.Errorf("orchestrator: download: %w", err)
	}
	o.logger.Info("qr code saved", "path", path, "artifact", artifact.Kind())
	return path, nil
}

// CopyToClipboard writes the raw payload to the clipboard and reports whether
// it did. An empty payload writes nothing. Failures are logged, never
// returned; the copied acknowledgment simply does not appear.
func (o *Orchestrator) CopyToClipboard(ctx context.Context) bool {
	value := o.Payload()
	if value == "" {
		return false
	}

	err := o.clipboard.WriteText(ctx, value)
	o.metrics.ObserveClipboard(err)
	if err != nil {
		o.logger.Error("failed to copy text", "error", err)
		return false
	}
	o.markCopied()
	return true
}

// Copied reports whether a copy succeeded within the acknowledgment window.
func (o *Orchestrator) Copied() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.copied
}

func (o *Orchestrator) markCopied() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.copiedStop != nil {
		o.copiedStop()
	}
	o.copied = true
	o.copiedGen++
	gen := o.copiedGen
	timer := time.AfterFunc(o.copiedFor, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.copiedGen == gen {
			o.copied = false
		}
	})
	o.copiedStop = timer.Stop
}
