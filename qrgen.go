// Package qrgen turns URL, text and contact form input into QR codes. The
// heavy lifting lives in pkg/; this package re-exports the pieces most
// callers need.
package qrgen

import (
	"context"
	"fmt"

	"github.com/goliatone/go-qrgen/pkg/orchestrator"
	"github.com/goliatone/go-qrgen/pkg/payload"
	"github.com/goliatone/go-qrgen/pkg/resolver"
)

// Kind aliases payload.Kind.
type Kind = payload.Kind

// ContactRecord aliases payload.ContactRecord.
type ContactRecord = payload.ContactRecord

// FormState aliases payload.FormState.
type FormState = payload.FormState

// Result aliases resolver.Result.
type Result = resolver.Result

const (
	KindURL     = payload.KindURL
	KindText    = payload.KindText
	KindContact = payload.KindContact
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Derive returns the encodable payload for state.
func Derive(state FormState) string {
	return payload.Derive(state)
}

// Generate loads state into a new orchestrator and waits for the render to
// settle. The orchestrator is returned so callers can download or copy.
func Generate(ctx context.Context, state FormState, options ...orchestrator.Option) (*orchestrator.Orchestrator, Result, error) {
	opts := append([]orchestrator.Option{orchestrator.WithInitialKind(state.Kind)}, options...)
	orch := orchestrator.New(opts...)
	if _, err := orch.SetKind(ctx, state.Kind); err != nil {
		return nil, Result{}, err
	}
	orch.SetURL(ctx, state.URL)
	orch.SetText(ctx, state.Text)
	pending := orch.SetContact(ctx, state.Contact)

	res, err := pending.Wait(ctx)
	if err != nil {
		return nil, Result{}, fmt.Errorf("qrgen: generate: %w", err)
	}
	return orch, res, nil
}
