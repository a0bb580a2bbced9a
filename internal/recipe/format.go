package recipe

import (
	"fmt"

	"github.com/suse-bci/bcigen/internal/image"
)

// Name of the rendered Dockerfile.
const DockerfileName = "Dockerfile"

// Build recipe format.
type Format int

const (
	FormatDockerfile Format = iota
	FormatKiwi
)

// Returns the format of a build recipe type.
func FormatOf(t image.BuildType) Format {
	switch t {
	case image.BuildKiwi:
		return FormatKiwi
	default:
		return FormatDockerfile
	}
}

// Returns the formats to render for an image: its primary format, followed
// by the other one when all is set.
func Formats(n *image.Normalized, all bool) []Format {
	primary := FormatOf(n.BuildRecipeType)
	if !all {
		return []Format{primary}
	}
	if primary == FormatKiwi {
		return []Format{FormatKiwi, FormatDockerfile}
	}
	return []Format{FormatDockerfile, FormatKiwi}
}

func (f Format) String() string {
	switch f {
	case FormatDockerfile:
		return "dockerfile"
	case FormatKiwi:
		return "kiwi"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Returns the name of the file the format is rendered to.
func (f Format) FileName(n *image.Normalized) string {
	switch f {
	case FormatKiwi:
		return n.PackageName + ".kiwi"
	default:
		return DockerfileName
	}
}

// Renders an image in the given format.
func Render(n *image.Normalized, f Format) (string, error) {
	switch f {
	case FormatDockerfile:
		return RenderDockerfile(n)
	case FormatKiwi:
		return RenderKiwi(n)
	default:
		return "", fmt.Errorf("%w: unknown format %d", ErrRender, int(f))
	}
}
