package image

import (
	"github.com/suse-bci/bcigen/internal/osversion"
)

const (

	// Maintainer of images that do not name one.
	DefaultMaintainer = "SUSE LLC (https://www.suse.com/)"

	// License of build recipes that do not name one.
	DefaultLicense = "MIT"

	// Parent image value denoting an image without a parent.
	Scratch = "scratch"
)

// Declarative description of one container image variant.
//
// Every accepted field is listed here; definition files with other keys are
// rejected by [LoadDefinitions]. Optional fields are documented with the
// value used when they are left empty.
type Definition struct {

	// Image name, used to build tags and the label prefix. Required.
	Name string `json:"name"`

	// Display name used in titles and descriptions. Defaults to Name.
	PrettyName string `json:"prettyName,omitempty"`

	// Alias names; the full tag set is published under each of them too.
	AdditionalNames []string `json:"additionalNames,omitempty"`

	// Primary tag. May itself be a placeholder token. Required for language
	// stacks, defaults to the OS container version for OS containers.
	Version string `json:"version,omitempty"`

	// Extra tags.
	AdditionalVersions []string `json:"additionalVersions,omitempty"`

	// Name of the build package; the identity of the KIWI description.
	// Required.
	PackageName string `json:"packageName"`

	// Image family. Defaults to [StackLanguage].
	Stack Stack `json:"stack,omitempty"`

	// Parent image reference. Defaults to the OS base image; [Scratch] means
	// the image has no parent.
	FromImage string `json:"fromImage,omitempty"`

	// OS version the image is built on. Required.
	OsVersion osversion.OsVersion `json:"osVersion"`

	// Packages in declaration order.
	PackageList []Package `json:"packages,omitempty"`

	// Environment variables. Values of other types are formatted as text.
	Env map[string]any `json:"env,omitempty"`

	// Labels appended after the computed ones, in declaration order.
	ExtraLabels Labels `json:"extraLabels,omitempty"`

	// Additional files written next to the build recipe, keyed by path.
	// Contents are passed through untouched.
	ExtraFiles map[string]string `json:"extraFiles,omitempty"`

	// Volume paths.
	Volumes []string `json:"volumes,omitempty"`

	// Exposed TCP ports.
	ExposesTCP []uint16 `json:"exposesTcp,omitempty"`

	// Entrypoint arguments.
	Entrypoint []string `json:"entrypoint,omitempty"`

	// Command arguments.
	Cmd []string `json:"cmd,omitempty"`

	// Maintainer. Defaults to [DefaultMaintainer].
	Maintainer string `json:"maintainer,omitempty"`

	// Support level label. Unset omits the label.
	SupportLevel SupportLevel `json:"supportLevel,omitempty"`

	// End of support label. Zero omits the label.
	SupportedUntil Date `json:"supportedUntil,omitempty"`

	// Whether the tag set includes "latest". Only meaningful on OS versions
	// that can be latest; this is not checked.
	IsLatest bool `json:"isLatest,omitempty"`

	// SPDX license of the build recipe. Defaults to [DefaultLicense].
	License string `json:"license,omitempty"`

	// Architectures the image is restricted to, in declaration order.
	ExclusiveArch []osversion.Arch `json:"exclusiveArch,omitempty"`

	// Primary build recipe format. Defaults to [BuildDocker].
	BuildRecipeType BuildType `json:"buildRecipeType,omitempty"`

	// Description overriding the generated one. "{based_on_container}" and
	// "{podman_only}" are expanded.
	CustomDescription string `json:"customDescription,omitempty"`

	// Raw text appended to the Dockerfile.
	CustomEnd string `json:"customEnd,omitempty"`

	// Script run by KIWI after package installation.
	ConfigShScript string `json:"configShScript,omitempty"`

	// Interpreter of ConfigShScript. Defaults to [DefaultConfigShInterpreter].
	ConfigShInterpreter string `json:"configShInterpreter,omitempty"`

	// Placeholders replaced by the build service.
	ReplacementsViaService []Replacement `json:"replacementsViaService,omitempty"`
}

// Interpreter of config scripts that do not name one.
const DefaultConfigShInterpreter = "/bin/bash"
