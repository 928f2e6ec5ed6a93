// Package render owns the output surface a QR code is drawn into.
//
// A Target holds at most one Artifact at a time: either a Canvas produced by
// the local backend or an ImageElement pointing at a remote chart service.
// Every Clear or Attach starts a new generation, and AttachIf lets an
// asynchronous producer attach only while its generation is still current.
// Readers (exports, markup) go through the read-only Surface interface.
package render
