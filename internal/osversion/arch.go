package osversion

import (
	"fmt"
	"strings"

	"github.com/containerd/platforms"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Build architecture, named the way the build service names it.
type Arch string

const (
	ArchX86_64  Arch = "x86_64"
	ArchAarch64 Arch = "aarch64"
	ArchS390x   Arch = "s390x"
	ArchPpc64le Arch = "ppc64le"
)

// OCI architecture names for each build architecture.
var ociArchitectures = map[Arch]string{
	ArchX86_64:  "amd64",
	ArchAarch64: "arm64",
	ArchS390x:   "s390x",
	ArchPpc64le: "ppc64le",
}

// Parses an architecture name.
//
// Build service names (e.g. "x86_64") are accepted as-is. Anything else is
// interpreted as an OCI platform specifier ("amd64", "linux/arm64/v8") and
// mapped back to the build service name.
func ParseArch(s string) (Arch, error) {
	s = strings.TrimSpace(s)
	if _, ok := ociArchitectures[Arch(s)]; ok {
		return Arch(s), nil
	}

	spec := s
	if !strings.Contains(spec, "/") {
		spec = "linux/" + spec
	}

	p, err := platforms.Parse(spec)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownArch, s)
	}

	for _, a := range AllArchs() {
		if ociArchitectures[a] == p.Architecture {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownArch, s)
}

// Returns every known architecture in a stable order.
func AllArchs() []Arch {
	return []Arch{ArchX86_64, ArchAarch64, ArchS390x, ArchPpc64le}
}

// Whether the architecture is one of the known ones.
func (a Arch) Valid() bool {
	_, ok := ociArchitectures[a]
	return ok
}

// Returns the linux OCI platform for the architecture.
func (a Arch) Platform() ocispec.Platform {
	return platforms.Normalize(ocispec.Platform{
		OS:           "linux",
		Architecture: ociArchitectures[a],
	})
}

// Returns the OCI platform specifier (e.g. "linux/amd64").
func (a Arch) PlatformString() string {
	return platforms.Format(a.Platform())
}

func (a Arch) String() string {
	return string(a)
}

// Implements [encoding.TextUnmarshaler] so that definition files may use
// either naming scheme.
func (a *Arch) UnmarshalText(text []byte) error {
	parsed, err := ParseArch(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
