// Package resolver decides which backend renders a payload and drives the
// result into a render.Target.
//
// Backends are tried in a fixed order: the local backend (loaded on demand
// through a backend.Library), then the first remote chart service, then the
// second. A backend that failed is never retried within the same call.
// Render never blocks on I/O; it returns a Pending handle that settles once
// the call reaches a final stage. Every call clears the target first, and an
// asynchronous completion attaches only if no newer call has started since.
package resolver
