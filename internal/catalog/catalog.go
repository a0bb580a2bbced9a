package catalog

import (
	"slices"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/osversion"
	"github.com/suse-bci/bcigen/internal/recipe"
)

// Restricts a set of definitions. Empty fields match everything.
type Filter struct {
	OsVersions   []osversion.OsVersion // Keep only these OS versions.
	PackageNames []string              // Keep only these build packages.
}

// Returns every definition of the catalogue in a stable order.
func All() []image.Definition {
	var defs []image.Definition
	defs = append(defs, pythonImages()...)
	defs = append(defs, rubyImages()...)
	defs = append(defs, baseImages()...)
	return defs
}

// Returns the definitions matching the filter, preserving their order.
func Select(defs []image.Definition, f Filter) []image.Definition {
	var out []image.Definition
	for _, def := range defs {
		if len(f.OsVersions) > 0 && !slices.Contains(f.OsVersions, def.OsVersion) {
			continue
		}
		if len(f.PackageNames) > 0 && !slices.Contains(f.PackageNames, def.PackageName) {
			continue
		}
		out = append(out, def)
	}
	return out
}

// Returns a _constraints file requesting the given disk size. Panics on a
// non-positive size.
func diskConstraints(gib int) map[string]string {
	c, err := recipe.DiskSizeConstraints(gib)
	if err != nil {
		panic(err)
	}
	return map[string]string{recipe.ConstraintsFileName: c}
}

// Returns the packages with the lifecycle data of the OS version appended.
func withLifecycle(osv osversion.OsVersion, names ...string) []image.Package {
	return image.Packages(slices.Concat(names, osv.LifecyclePackages())...)
}
