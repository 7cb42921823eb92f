//go:build !libvlc || !cgo

package libvlc

import (
	"fmt"

	"github.com/mediactl/mediactl/native"
)

var errUnsupported = fmt.Errorf("%w: built without libvlc support (rebuild with -tags libvlc)", native.ErrEngineUnavailable)

// New reports that the libVLC engine is not compiled in.
func New() (native.Engine, error) {
	return nil, errUnsupported
}

// Available reports whether the binary was built with libVLC support.
func Available() bool {
	return false
}
