package cli

import (
	"fmt"
	"log/slog"

	"github.com/suse-bci/bcigen/internal/catalog"
	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/osversion"
	"github.com/suse-bci/bcigen/internal/paths"
)

// Flags selecting the images a command works on.
type SelectFlags struct {
	File    []string `short:"f" help:"YAML definition file, repeatable. Defaults to the user definition file when it exists." placeholder:"PATH"`
	Catalog bool     `help:"Include the built-in catalogue." default:"true" negatable:""`
	Os      []string `help:"Only select these OS versions (e.g. 15.5, Tumbleweed)." placeholder:"VERSION"`
	Package []string `help:"Only select these build packages." placeholder:"NAME"`
}

// Collects the selected definitions.
//
// Catalogue definitions come first, followed by the definitions of every
// file in order.
func (s *SelectFlags) definitions() ([]image.Definition, error) {
	var defs []image.Definition
	if s.Catalog {
		defs = append(defs, catalog.All()...)
	}

	files := s.File
	if len(files) == 0 {
		if path, ok := paths.UserDefinitions(); ok {
			files = []string{path}
		}
	}

	for _, path := range files {
		loaded, err := image.LoadDefinitionsFile(path)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded definitions", "file", path, "count", len(loaded))
		defs = append(defs, loaded...)
	}

	filter, err := s.filter()
	if err != nil {
		return nil, err
	}
	return catalog.Select(defs, filter), nil
}

func (s *SelectFlags) filter() (catalog.Filter, error) {
	f := catalog.Filter{PackageNames: s.Package}
	for _, id := range s.Os {
		v, err := osversion.Parse(id)
		if err != nil {
			return f, fmt.Errorf("--os: %w", err)
		}
		f.OsVersions = append(f.OsVersions, v)
	}
	return f, nil
}
