package backend_test

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-qrgen/pkg/backend"
)

type fakeBackend struct{}

func (fakeBackend) Render(string, backend.Style) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestLibraryEnsureDeduplicatesInFlightLoads(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	loader := backend.LoaderFunc(func(ctx context.Context) (backend.Backend, error) {
		calls.Add(1)
		<-release
		return fakeBackend{}, nil
	})

	lib := backend.NewLibrary(loader)
	if lib.Loaded() {
		t.Fatalf("library must start unloaded")
	}

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lib.Ensure(context.Background())
			errs <- err
		}()
	}

	// Let the callers pile onto the pending load before it completes.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("ensure: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single load, got %d", got)
	}
	if !lib.Loaded() {
		t.Fatalf("expected library to be loaded")
	}

	if _, err := lib.Ensure(context.Background()); err != nil {
		t.Fatalf("ensure after load: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loaded library must not load again, got %d loads", got)
	}
}

func TestLibraryFailedLoadStaysRetryable(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("script error")
	loader := backend.LoaderFunc(func(ctx context.Context) (backend.Backend, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return fakeBackend{}, nil
	})

	var observed []error
	lib := backend.NewLibrary(loader, backend.WithLoadObserver(func(err error) {
		observed = append(observed, err)
	}))

	if _, err := lib.Ensure(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if lib.Loaded() {
		t.Fatalf("failed load must leave the library unloaded")
	}
	if _, err := lib.Backend(); !errors.Is(err, backend.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}

	if _, err := lib.Ensure(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !lib.Loaded() {
		t.Fatalf("expected library to be loaded after retry")
	}
	if len(observed) != 2 || !errors.Is(observed[0], boom) || observed[1] != nil {
		t.Fatalf("unexpected observed loads %v", observed)
	}
}

func TestLibraryEnsureHonoursCallerContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	loader := backend.LoaderFunc(func(ctx context.Context) (backend.Backend, error) {
		<-release
		return fakeBackend{}, nil
	})
	lib := backend.NewLibrary(loader)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := lib.Ensure(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
