package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// ErrNotImage is returned when a service answers with a non-image body.
var ErrNotImage = errors.New("remote: response is not an image")

// ImageLoader resolves an image source. A nil error is the load event, a
// non-nil error the error event.
type ImageLoader interface {
	Load(ctx context.Context, src string) error
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, src string) error

func (f ImageLoaderFunc) Load(ctx context.Context, src string) error {
	return f(ctx, src)
}

// HTTPImageLoader fetches sources over HTTP. No timeout is applied beyond
// the caller's context and the client's own settings.
type HTTPImageLoader struct {
	Client *http.Client
}

// NewHTTPImageLoader returns a loader using client, or http.DefaultClient.
func NewHTTPImageLoader(client *http.Client) *HTTPImageLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPImageLoader{Client: client}
}

func (l *HTTPImageLoader) Load(ctx context.Context, src string) error {
	if src == "" {
		return errors.New("remote: image source is required")
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("remote: load image: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote: unexpected status %s", resp.Status)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return fmt.Errorf("%w: %q", ErrNotImage, resp.Header.Get("Content-Type"))
	}
	return nil
}

// Fetch downloads src and returns its body. It is used when an image element
// is exported by source reference.
func Fetch(ctx context.Context, client *http.Client, src string) ([]byte, error) {
	if client == nil {
		return nil, errors.New("remote: http client is not configured")
	}
	if src == "" {
		return nil, errors.New("remote: url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("remote: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return data, nil
}
