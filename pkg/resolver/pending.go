package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-qrgen/pkg/render"
)

// Stage records how a render call settled.
type Stage string

const (
	// StageEmpty means the payload was blank; the target was cleared.
	StageEmpty Stage = "empty"
	// StageLocal means the local backend drew the artifact.
	StageLocal Stage = "local"
	// StagePrimary means the first remote service's image loaded.
	StagePrimary Stage = "primary"
	// StageSecondary means the second remote service's image loaded.
	StageSecondary Stage = "secondary"
	// StageBroken means both remote services failed; the element stays
	// attached without a usable image.
	StageBroken Stage = "broken"
	// StageSuperseded means a newer call started before this one could
	// attach anything.
	StageSuperseded Stage = "superseded"
)

// Result describes a settled render call.
type Result struct {
	ID       string
	Payload  string
	Started  time.Time
	Stage    Stage
	Artifact render.Artifact
	// LocalErr holds why the local backend was abandoned, if it was.
	LocalErr error
}

// Pending is the handle for an in-flight render call.
type Pending struct {
	id    string
	value string
	once  sync.Once
	done  chan struct{}

	mu     sync.Mutex
	result Result
}

func newPending(id, value string, started time.Time) *Pending {
	return &Pending{
		id:     id,
		value:  value,
		done:   make(chan struct{}),
		result: Result{ID: id, Payload: value, Started: started},
	}
}

// ID returns the call's correlation id.
func (p *Pending) ID() string {
	return p.id
}

// Payload returns the string this call renders.
func (p *Pending) Payload() string {
	return p.value
}

// Done is closed once the call settles.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result returns the outcome and whether the call has settled.
func (p *Pending) Result() (Result, bool) {
	select {
	case <-p.done:
	default:
		return Result{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, true
}

// Wait blocks until the call settles or ctx ends.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-p.done:
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, nil
}

func (p *Pending) setLocalErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result.LocalErr = err
}

func (p *Pending) settle(stage Stage, artifact render.Artifact) {
	p.once.Do(func() {
		p.mu.Lock()
		p.result.Stage = stage
		p.result.Artifact = artifact
		p.mu.Unlock()
		close(p.done)
	})
}
