package render

import "errors"

var (
	// ErrNoArtifact signals that nothing is attached to the surface.
	ErrNoArtifact = errors.New("render: no artifact attached")
	// ErrUnsupportedArtifact is returned for artifact kinds the caller cannot
	// handle.
	ErrUnsupportedArtifact = errors.New("render: unsupported artifact")
)
