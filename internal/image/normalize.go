package image

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/suse-bci/bcigen/internal/osversion"
)

const (
	basedOnPlaceholder = "{based_on_container}"
	podmanPlaceholder  = "{podman_only}"
	podmanOnly         = "This container is only supported with podman."
)

// An environment variable with its value formatted as text.
type EnvVar struct {
	Name  string
	Value string
}

// Canonical, validated form of a [Definition].
//
// The embedded definition is a deep copy with defaults applied. The derived
// fields are computed once so that both renderers read the same facts.
// A Normalized value must not be modified after [Normalize] returns it.
type Normalized struct {
	Definition

	OS            *osversion.Info  // Metadata of the OS version.
	ImageName     string           // Repository basename ("python", "bci-micro").
	Names         []string         // Registry-relative repositories, primary first.
	Tags          []string         // Ordered tag set.
	BuildTags     []string         // Every name combined with every tag.
	BuildVersion  string           // Build service version directive, empty when none applies.
	KiwiVersion   string           // KIWI image version.
	Title         string           // Image title.
	Description   string           // Image description.
	LabelPrefix   string           // Prefix marker wrapping the label block.
	Labels        []Label          // Ordered label block.
	EnvVars       []EnvVar         // Environment, sorted by name.
	Packages      PackageSet       // Packages partitioned by install phase.
	ExclusiveArch []osversion.Arch // Duplicate-free architecture restriction, empty when unrestricted.
}

// Validates a definition and derives its canonical form.
//
// All problems are reported at once, joined, each wrapping
// [ErrInvalidDefinition]. The definition is not modified.
func Normalize(def Definition) (*Normalized, error) {
	n := &Normalized{Definition: cloneDefinition(def)}

	info, err := n.OsVersion.Lookup()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	n.OS = info

	n.applyDefaults()

	arch, archErr := n.exclusiveArch()
	if err := errors.Join(n.validate(), archErr); err != nil {
		return nil, err
	}
	n.ExclusiveArch = arch

	n.ImageName = n.Name
	if n.Stack == StackOS {
		n.ImageName = "bci-" + n.Name
	}

	n.Names = []string{n.repository(n.ImageName)}
	for _, alias := range n.AdditionalNames {
		n.Names = append(n.Names, n.repository(alias))
	}

	n.Tags = buildTagSet(n.Version, n.AdditionalVersions, n.IsLatest)
	for _, name := range n.Names {
		for _, tag := range n.Tags {
			n.BuildTags = append(n.BuildTags, name+":"+tag)
		}
	}

	n.BuildVersion = n.buildVersion()
	n.KiwiVersion = n.OS.KiwiVersion
	n.Title = n.title()
	n.Description = n.description()
	n.LabelPrefix = n.OS.LabelNamespace + ".bci." + n.Name
	n.Labels = assembleLabels(n, n.ExtraLabels)
	n.EnvVars = envVars(n.Env)
	n.Packages = partitionPackages(n.PackageList)

	return n, nil
}

// Returns a copy of the definition that shares no slices or maps with it.
func cloneDefinition(def Definition) Definition {
	def.AdditionalNames = slices.Clone(def.AdditionalNames)
	def.AdditionalVersions = slices.Clone(def.AdditionalVersions)
	def.PackageList = slices.Clone(def.PackageList)
	def.Env = maps.Clone(def.Env)
	def.ExtraLabels = slices.Clone(def.ExtraLabels)
	def.ExtraFiles = maps.Clone(def.ExtraFiles)
	def.Volumes = slices.Clone(def.Volumes)
	def.ExposesTCP = slices.Clone(def.ExposesTCP)
	def.Entrypoint = slices.Clone(def.Entrypoint)
	def.Cmd = slices.Clone(def.Cmd)
	def.ExclusiveArch = slices.Clone(def.ExclusiveArch)
	def.ReplacementsViaService = slices.Clone(def.ReplacementsViaService)
	return def
}

// Fills in the documented defaults of optional fields.
func (n *Normalized) applyDefaults() {
	if n.PrettyName == "" {
		n.PrettyName = n.Name
	}
	if n.Version == "" && n.Stack == StackOS {
		n.Version = n.OS.ContainerVersion
	}
	if n.FromImage == "" {
		n.FromImage = n.OS.BaseImage
	}
	if n.Maintainer == "" {
		n.Maintainer = DefaultMaintainer
	}
	if n.License == "" {
		n.License = DefaultLicense
	}
	if n.ConfigShScript != "" && n.ConfigShInterpreter == "" {
		n.ConfigShInterpreter = DefaultConfigShInterpreter
	}
}

// Checks the cross-field constraints of the definition.
func (n *Normalized) validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidDefinition}, args...)...))
	}

	singleLine := func(field, value string) {
		if strings.ContainsAny(value, "\r\n") {
			invalid("%s %q spans more than one line", field, value)
		}
	}

	if n.Name == "" {
		invalid("empty name")
	}
	if n.PackageName == "" {
		invalid("empty package name")
	}
	if n.Version == "" {
		invalid("empty version")
	}
	if !n.SupportLevel.Valid() {
		invalid("support level %q", n.SupportLevel)
	}
	for i, name := range n.AdditionalNames {
		if name == "" {
			invalid("additional name %d is empty", i+1)
		}
		singleLine("additional name", name)
	}
	for _, v := range n.AdditionalVersions {
		singleLine("additional version", v)
	}
	singleLine("name", n.Name)
	singleLine("package name", n.PackageName)
	singleLine("pretty name", n.PrettyName)
	singleLine("description", n.CustomDescription)
	singleLine("version", n.Version)
	singleLine("base image", n.FromImage)
	singleLine("maintainer", n.Maintainer)
	singleLine("license", n.License)
	for i, p := range n.PackageList {
		if p.Name == "" {
			invalid("package %d has no name", i+1)
		}
		if p.Kind < PackageNormal || p.Kind > PackageDelete {
			invalid("package %q has kind %s", p.Name, p.Kind)
		}
	}
	for i, v := range n.Volumes {
		if v == "" {
			invalid("volume %d is empty", i+1)
		}
		singleLine("volume", v)
	}
	for _, port := range n.ExposesTCP {
		if port == 0 {
			invalid("tcp port 0")
		}
	}
	for _, name := range sortedKeys(n.Env) {
		if !validKey(name) {
			invalid("environment variable name %q", name)
		}
		singleLine("environment variable "+name, formatValue(n.Env[name]))
	}
	if n.ConfigShScript == "" && n.ConfigShInterpreter != "" {
		invalid("config script interpreter %q without script", n.ConfigShInterpreter)
	}
	if strings.Contains(n.ConfigShScript, "]]>") {
		invalid("config script contains \"]]>\"")
	}

	reserved := map[string]bool{}
	for _, l := range assembleLabels(n, nil) {
		reserved[l.Key] = true
	}
	seen := make(map[string]bool, len(n.ExtraLabels))
	for _, l := range n.ExtraLabels {
		switch {
		case !validKey(l.Key):
			invalid("extra label key %q", l.Key)
		case reserved[l.Key]:
			invalid("extra label %q clashes with a computed label", l.Key)
		case seen[l.Key]:
			invalid("extra label %q is declared more than once", l.Key)
		}
		seen[l.Key] = true
		singleLine("extra label "+l.Key, l.Value)
	}

	tokens := make(map[string]bool, len(n.ReplacementsViaService))
	for _, r := range n.ReplacementsViaService {
		if r.Token == "" || r.PackageName == "" {
			invalid("replacement needs a token and a package name (token %q, package %q)", r.Token, r.PackageName)
			continue
		}
		if tokens[r.Token] {
			errs = append(errs, fmt.Errorf("%w: token %q is used by more than one replacement", ErrAmbiguousPlaceholder, r.Token))
		}
		tokens[r.Token] = true
	}

	return errors.Join(errs...)
}

// Reports whether s can be used as a label key or variable name. Keys are
// written unquoted into the Dockerfile.
func validKey(s string) bool {
	return s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		return r == '=' || r == '"' || unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// Returns the duplicate-free architecture restriction.
//
// The restriction must name known architectures and share at least one with
// the OS version, otherwise no variant of the image can be built.
func (n *Normalized) exclusiveArch() ([]osversion.Arch, error) {
	if len(n.Definition.ExclusiveArch) == 0 {
		return nil, nil
	}

	var archs []osversion.Arch
	buildable := false
	for _, a := range n.Definition.ExclusiveArch {
		if !a.Valid() {
			return nil, fmt.Errorf("%w: architecture %q", ErrInvalidDefinition, a)
		}
		if slices.Contains(archs, a) {
			continue
		}
		archs = append(archs, a)
		if n.OS.HasArch(a) {
			buildable = true
		}
	}

	if !buildable {
		return nil, fmt.Errorf("%w: %v not built on %s", ErrNoBuildableArch, archs, n.OsVersion)
	}
	return archs, nil
}

// Returns the registry-relative repository of a name.
func (n *Normalized) repository(name string) string {
	return n.OS.BuildTagPrefix + "/" + name
}

// Returns the fully qualified, release specific reference of the image.
func (n *Normalized) Reference() string {
	return n.OS.Registry + "/" + n.repository(n.ImageName) + ":" + n.Version + "-" + PlaceholderRelease
}

// Returns the build service version directive value.
//
// Only SLE versions carry one. Placeholder versions cannot be part of it.
func (n *Normalized) buildVersion() string {
	if !n.OS.IsSLE() {
		return ""
	}
	id := string(n.OsVersion)
	if n.Stack == StackOS || strings.Contains(n.Version, "%") {
		return id
	}
	return id + "." + n.Version
}

func (n *Normalized) title() string {
	if n.Stack == StackOS {
		return n.PrettyName
	}
	return n.OS.DistributionName + " " + n.PrettyName
}

func (n *Normalized) description() string {
	basedOn := "based on the " + n.OS.BaseImageName
	if n.CustomDescription == "" {
		return n.PrettyName + " container " + basedOn + "."
	}
	r := strings.NewReplacer(basedOnPlaceholder, basedOn, podmanPlaceholder, podmanOnly)
	return strings.TrimSpace(r.Replace(n.CustomDescription))
}

// Whether the image has a parent image.
func (n *Normalized) HasParent() bool {
	return n.FromImage != Scratch
}

// Returns the KIWI specification string.
func (n *Normalized) Specification() string {
	return n.Title + " Container Image"
}

// Returns the environment sorted by name with values formatted as text.
func envVars(env map[string]any) []EnvVar {
	vars := make([]EnvVar, 0, len(env))
	for _, name := range sortedKeys(env) {
		vars = append(vars, EnvVar{Name: name, Value: formatValue(env[name])})
	}
	return vars
}

// Formats an environment value. Whole floats, which is what YAML numbers
// decode to, are printed without a fraction.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
