// Package orchestrator holds the form state, derives the payload on every
// change and drives the renderer resolver against a single render target. It
// also exposes the download and copy actions over the current payload and
// surface.
package orchestrator
