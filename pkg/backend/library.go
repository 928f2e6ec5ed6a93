package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

const loadKey = "backend"

// LoadObserver is notified once per completed load attempt.
type LoadObserver func(err error)

// LibraryOption customises a Library.
type LibraryOption func(*Library)

// WithLogger sets the logger used to report load failures.
func WithLogger(logger *slog.Logger) LibraryOption {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithLoadObserver registers a hook called after every load attempt.
func WithLoadObserver(observer LoadObserver) LibraryOption {
	return func(l *Library) {
		if observer != nil {
			l.observers = append(l.observers, observer)
		}
	}
}

// Library tracks whether the local backend is loaded.
type Library struct {
	loader Loader
	logger *slog.Logger

	group     singleflight.Group
	mu        sync.RWMutex
	backend   Backend
	observers []LoadObserver
}

// NewLibrary returns an unloaded library backed by loader.
func NewLibrary(loader Loader, options ...LibraryOption) *Library {
	l := &Library{
		loader: loader,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

var (
	sharedOnce sync.Once
	shared     *Library
)

// Shared returns the process-wide library backed by the go-qrcode loader.
func Shared() *Library {
	sharedOnce.Do(func() {
		shared = NewLibrary(QRCodeLoader())
	})
	return shared
}

// Loaded reports whether a load has succeeded.
func (l *Library) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.backend != nil
}

// Backend returns the loaded backend or ErrNotLoaded.
func (l *Library) Backend() (Backend, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.backend == nil {
		return nil, ErrNotLoaded
	}
	return l.backend, nil
}

// Ensure returns the backend, loading it when needed. Callers arriving while
// a load is in flight wait for that same load. The load itself ignores ctx
// cancellation; ctx only bounds how long this caller waits.
func (l *Library) Ensure(ctx context.Context) (Backend, error) {
	if b, err := l.Backend(); err == nil {
		return b, nil
	}
	if l.loader == nil {
		return nil, fmt.Errorf("backend: load: loader is nil")
	}

	ch := l.group.DoChan(loadKey, func() (any, error) {
		if b, err := l.Backend(); err == nil {
			return b, nil
		}
		b, err := l.loader.Load(context.WithoutCancel(ctx))
		if err == nil && b == nil {
			err = ErrNotLoaded
		}
		l.notify(err)
		if err != nil {
			l.logger.Warn("local backend load failed", "error", err)
			return nil, err
		}
		l.mu.Lock()
		l.backend = b
		l.mu.Unlock()
		return b, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("backend: load: %w", res.Err)
		}
		return res.Val.(Backend), nil
	}
}

func (l *Library) notify(err error) {
	l.mu.RLock()
	observers := append([]LoadObserver(nil), l.observers...)
	l.mu.RUnlock()
	for _, observer := range observers {
		observer(err)
	}
}
