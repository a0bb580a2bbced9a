package build

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrBuild               = errors.New("build failed")
	ErrFileSystemOperation = errors.New("file system operation failed")
	ErrArchive             = errors.New("archive failed")
	ErrDuplicatePackage    = fmt.Errorf("duplicate build package: %w", errdefs.ErrAlreadyExists)
	ErrExtraFile           = fmt.Errorf("invalid extra file: %w", errdefs.ErrInvalidArgument)
)
