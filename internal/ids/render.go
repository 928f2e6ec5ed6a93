// Package ids issues the correlation ids attached to render calls.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRenderID returns a ULID stamped with the time a render call started.
// Calls started within the same millisecond still get increasing ids, so
// log lines sort in call order.
func NewRenderID(started time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(started), entropy).String()
}
