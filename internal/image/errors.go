package image

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrInvalidDefinition    = fmt.Errorf("invalid image definition: %w", errdefs.ErrInvalidArgument)
	ErrAmbiguousPlaceholder = fmt.Errorf("ambiguous placeholder: %w", ErrInvalidDefinition)
	ErrNoBuildableArch      = fmt.Errorf("no buildable architecture: %w", ErrInvalidDefinition)
)
