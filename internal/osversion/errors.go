package osversion

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrUnknownVersion = fmt.Errorf("unknown os version: %w", errdefs.ErrNotFound)
	ErrUnknownArch    = fmt.Errorf("unknown architecture: %w", errdefs.ErrInvalidArgument)
)
