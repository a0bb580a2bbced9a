package recipe

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrFormatIncapable = fmt.Errorf("format cannot express definition: %w", errdefs.ErrNotImplemented)
	ErrRender          = errors.New("render failed")
)
