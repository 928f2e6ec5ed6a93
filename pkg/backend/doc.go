// Package backend provides the local QR rendering backend and the
// process-wide record of whether it has been loaded.
//
// A Library starts unloaded. Ensure loads the backend at most once: concurrent
// callers share the in-flight load, a success is cached for the life of the
// process, and a failure leaves the library unloaded so a later call can try
// again. The default backend draws codes with github.com/yeqown/go-qrcode.
package backend
