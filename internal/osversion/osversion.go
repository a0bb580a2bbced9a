package osversion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Opaque identifier of an operating system version.
type OsVersion string

const (
	SP3        OsVersion = "15.3"
	SP4        OsVersion = "15.4"
	SP5        OsVersion = "15.5"
	SP6        OsVersion = "15.6"
	Tumbleweed OsVersion = "Tumbleweed"
	Basalt     OsVersion = "Basalt"
)

// Metadata describing an operating system version.
type Info struct {
	ID               OsVersion // Identifier this record belongs to.
	PrettyName       string    // Human readable name (e.g. "SUSE Linux Enterprise Server 15 SP5").
	ShortName        string    // Name without the service pack dash (e.g. "SLE 15 SP5").
	DistributionName string    // Prefix of image titles (e.g. "SLE BCI").
	BaseImageName    string    // Name of the base container image used in descriptions.
	Vendor           string    // Vendor label value and image author.
	URL              string    // Product URL label value.
	Registry         string    // Registry the images are published to.
	BuildTagPrefix   string    // Repository prefix of every build tag (e.g. "bci").
	LabelNamespace   string    // Reverse-DNS namespace of vendor labels.
	BaseImage        string    // Default parent image of derived images.
	LifecycleURL     string    // Lifecycle documentation URL.
	EULA             string    // EULA label value, empty when the OS has none.
	ImageType        string    // Image type label value, empty when the OS has none.
	SupportLabels    bool      // Whether support level labels apply to this OS.
	SupportedUntil   time.Time // End of general support; zero when open ended.
	CanBeLatest      bool      // Whether images on this OS may carry the "latest" tag.
	Archs            []Arch    // Architectures the OS is built for.
	LifecyclePkgs    []string  // Lifecycle data packages language stacks should install.
	ContainerVersion string    // Tag of the OS base containers (e.g. "15.5" or "latest").
	KiwiVersion      string    // Image version used by KIWI descriptions.
}

// Whether the version is a SUSE Linux Enterprise service pack.
func (i *Info) IsSLE() bool {
	return i.SupportLabels
}

// Whether the OS is built for the given architecture.
func (i *Info) HasArch(a Arch) bool {
	return slices.Contains(i.Archs, a)
}

// Returns the metadata of the version.
//
// The returned value is a copy; callers may modify it freely.
func (v OsVersion) Lookup() (*Info, error) {
	info, ok := registry[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, string(v))
	}
	info.Archs = slices.Clone(info.Archs)
	info.LifecyclePkgs = slices.Clone(info.LifecyclePkgs)
	return &info, nil
}

// Returns the lifecycle data packages of the version, or nil when unknown.
func (v OsVersion) LifecyclePackages() []string {
	info, err := v.Lookup()
	if err != nil {
		return nil
	}
	return info.LifecyclePkgs
}

// Whether the version may carry the "latest" tag.
func (v OsVersion) CanBeLatest() bool {
	info, err := v.Lookup()
	return err == nil && info.CanBeLatest
}

// Returns the tag used by OS base containers on this version.
func (v OsVersion) ContainerVersion() string {
	info, err := v.Lookup()
	if err != nil {
		return ""
	}
	return info.ContainerVersion
}

// Returns the "prefix" used in build tags (e.g. "bci" or "opensuse/bci").
func (v OsVersion) BuildTagPrefix() string {
	info, err := v.Lookup()
	if err != nil {
		return ""
	}
	return info.BuildTagPrefix
}

// Returns the short display name (e.g. "SLE 15 SP5"), or the identifier
// itself when the version is unknown.
func (v OsVersion) ShortName() string {
	info, err := v.Lookup()
	if err != nil {
		return string(v)
	}
	return info.ShortName
}

func (v OsVersion) String() string {
	return string(v)
}

// Accepts the identifier as a JSON string or, since YAML turns an unquoted
// "15.5" into a number, as a JSON number. The identifier is not validated.
func (v *OsVersion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = OsVersion(s)
		return nil
	}

	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownVersion, data)
	}
	*v = OsVersion(num.String())
	return nil
}

// Parses an OS version identifier.
func Parse(s string) (OsVersion, error) {
	v := OsVersion(s)
	if _, ok := registry[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}
	return v, nil
}

// Returns every known version in a stable order.
func All() []OsVersion {
	return []OsVersion{SP3, SP4, SP5, SP6, Tumbleweed, Basalt}
}

// Returns the versions that OS base containers are built for.
func Base() []OsVersion {
	return []OsVersion{SP5, SP6, Tumbleweed, Basalt}
}

// Returns the versions whose images may carry the "latest" tag.
func Latest() []OsVersion {
	var out []OsVersion
	for _, v := range All() {
		if registry[v].CanBeLatest {
			out = append(out, v)
		}
	}
	return out
}
