package image

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Install phase of a package.
type PackageKind int

const (
	PackageNormal    PackageKind = iota // Installed in the main install phase.
	PackageBootstrap                    // Installed in the bootstrap phase (KIWI only, inline in Dockerfiles).
	PackageDelete                       // Removed from the image (KIWI only).
)

func (k PackageKind) String() string {
	switch k {
	case PackageNormal:
		return "normal"
	case PackageBootstrap:
		return "bootstrap"
	case PackageDelete:
		return "delete"
	default:
		return fmt.Sprintf("PackageKind(%d)", int(k))
	}
}

func (k PackageKind) MarshalText() ([]byte, error) {
	switch k {
	case PackageNormal, PackageBootstrap, PackageDelete:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("%w: package kind %d", ErrInvalidDefinition, int(k))
	}
}

func (k *PackageKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "normal", "image":
		*k = PackageNormal
	case "bootstrap":
		*k = PackageBootstrap
	case "delete":
		*k = PackageDelete
	default:
		return fmt.Errorf("%w: package kind %q", ErrInvalidDefinition, text)
	}
	return nil
}

// A package reference with its install phase.
type Package struct {
	Name string      `json:"name"`
	Kind PackageKind `json:"kind,omitempty"`
}

// Returns normal packages for the given names, in order.
func Packages(names ...string) []Package {
	pkgs := make([]Package, 0, len(names))
	for _, name := range names {
		pkgs = append(pkgs, Package{Name: name})
	}
	return pkgs
}

// Returns packages of the given kind for the given names, in order.
func PackagesOfKind(kind PackageKind, names ...string) []Package {
	pkgs := make([]Package, 0, len(names))
	for _, name := range names {
		pkgs = append(pkgs, Package{Name: name, Kind: kind})
	}
	return pkgs
}

// Accepts either a bare package name or a {name, kind} object. Bare names
// are normal packages.
func (p *Package) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Package{Name: name}
		return nil
	}

	type plain Package
	var v plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: package: %w", ErrInvalidDefinition, err)
	}
	*p = Package(v)
	return nil
}

// Package names split by install phase. Each list keeps declaration order.
type PackageSet struct {
	Image     []string // Normal packages.
	Bootstrap []string // Bootstrap phase packages.
	Delete    []string // Packages to remove.
	Install   []string // Normal and bootstrap packages, interleaved as declared.
}

// Partitions packages by kind.
func partitionPackages(pkgs []Package) PackageSet {
	var set PackageSet
	for _, p := range pkgs {
		switch p.Kind {
		case PackageNormal:
			set.Image = append(set.Image, p.Name)
			set.Install = append(set.Install, p.Name)
		case PackageBootstrap:
			set.Bootstrap = append(set.Bootstrap, p.Name)
			set.Install = append(set.Install, p.Name)
		case PackageDelete:
			set.Delete = append(set.Delete, p.Name)
		}
	}
	return set
}
