package render

import "sync"

// Surface is the read-only view of a Target used by exports.
type Surface interface {
	Current() (Artifact, bool)
}

// Target is the single output slot. Only the renderer resolver attaches to
// it; everything else reads through Surface.
type Target struct {
	mu         sync.RWMutex
	current    Artifact
	generation uint64
}

// NewTarget returns an empty target.
func NewTarget() *Target {
	return &Target{}
}

// Clear removes any attached artifact and starts a new generation. Clearing
// an empty target is harmless.
func (t *Target) Clear() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
	t.generation++
	return t.generation
}

// Attach replaces whatever is attached. A nil artifact clears the target.
func (t *Target) Attach(artifact Artifact) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = artifact
	t.generation++
	return t.generation
}

// AttachIf attaches artifact only when generation is still the latest one
// handed out, and reports whether it did.
func (t *Target) AttachIf(generation uint64, artifact Artifact) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if generation != t.generation {
		return false
	}
	t.current = artifact
	return true
}

// Current returns the attached artifact, if any.
func (t *Target) Current() (Artifact, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return nil, false
	}
	return t.current, true
}

// Generation returns the latest generation.
func (t *Target) Generation() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.generation
}
