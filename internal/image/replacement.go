package image

import "fmt"

// How a package version is cut down before it replaces a placeholder.
type ParseRule int

const (
	ParseFull  ParseRule = iota // Full version (e.g. "3.11.4").
	ParseMajor                  // Major version only (e.g. "3").
	ParseMinor                  // Major and minor version (e.g. "3.11").
)

func (r ParseRule) String() string {
	switch r {
	case ParseFull:
		return "full"
	case ParseMajor:
		return "major"
	case ParseMinor:
		return "minor"
	default:
		return fmt.Sprintf("ParseRule(%d)", int(r))
	}
}

func (r ParseRule) MarshalText() ([]byte, error) {
	switch r {
	case ParseFull, ParseMajor, ParseMinor:
		return []byte(r.String()), nil
	default:
		return nil, fmt.Errorf("%w: parse rule %d", ErrInvalidDefinition, int(r))
	}
}

func (r *ParseRule) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "full":
		*r = ParseFull
	case "major":
		*r = ParseMajor
	case "minor":
		*r = ParseMinor
	default:
		return fmt.Errorf("%w: parse rule %q", ErrInvalidDefinition, text)
	}
	return nil
}

// A placeholder in the rendered recipe that the build service replaces with
// the version of a package at build time.
//
// The token must appear verbatim in the rendered text; tokens that do not
// appear are silently unused. Tokens are unique within a definition.
type Replacement struct {
	Token       string    `json:"token"`
	PackageName string    `json:"packageName"`
	ParseRule   ParseRule `json:"parseVersion,omitempty"`
}
