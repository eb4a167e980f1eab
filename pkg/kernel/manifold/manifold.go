// Package manifold reserves the backend slot for a CGo binding to the
// Manifold geometry library. The binding is not part of this repository;
// New reports the backend as unavailable so callers fall back to sdfx.
package manifold

import (
	"errors"

	"github.com/forgecad/scadview/pkg/kernel"
)

// ErrUnavailable is returned while no Manifold binding is compiled in.
var ErrUnavailable = errors.New("manifold kernel not available")

// New returns an error indicating Manifold is not available.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
