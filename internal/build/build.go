package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/paths"
)

// Controls a batch run.
type Options struct {
	Definitions []image.Definition // Records to render.
	Output      string             // Root directory of the build packages.
	AllFormats  bool               // Also render the secondary format of every image.
	Archive     bool               // Bundle every package into a tar archive.
	Jobs        int                // Records processed in parallel. Defaults to GOMAXPROCS.
}

// A file written to a build package.
type Artifact struct {
	Name   string        // File name inside the package.
	Size   int64         // Size in bytes.
	Digest digest.Digest // Content digest.
}

// A written build package.
type Package struct {
	OsVersion   string     // OS version identifier.
	PackageName string     // Build package name.
	Dir         string     // Package directory.
	Artifacts   []Artifact // Written files, sorted by name.
	Archive     *Artifact  // Tar archive, nil unless requested.
	Skipped     []string   // Secondary formats that cannot express the image.
}

// Returned after a batch run.
type Result struct {
	Output   string    // Root directory of the build packages.
	Packages []Package // Successfully written packages, in input order.
}

// Renders and writes the build packages of a batch of definitions.
//
// Records are independent: a failing record is reported in the returned
// error, joined with every other failure, and the remaining packages are
// still written. A record whose OS version and package name repeat an
// earlier record fails with [ErrDuplicatePackage]. The result lists the
// packages that were written, also when an error is returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = goruntime.GOMAXPROCS(0)
	}

	slog.Info("rendering images",
		"count", len(opts.Definitions),
		"output", opts.Output,
		"jobs", jobs,
		"all-formats", opts.AllFormats,
		"archive", opts.Archive,
	)

	if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	pkgs := make([]*Package, len(opts.Definitions))
	errs := make([]error, len(opts.Definitions))
	dups := duplicates(opts.Definitions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, def := range opts.Definitions {
		id := recordID(def)
		if dups[i] {
			errs[i] = fmt.Errorf("%s: %w", id, ErrDuplicatePackage)
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", id, err)
				return nil
			}

			pkg, err := newPackageWriter(def, opts).write()
			if err != nil {
				slog.Debug("record failed", "record", id, "error", err)
				errs[i] = fmt.Errorf("%s: %w", id, err)
				return nil
			}
			pkgs[i] = pkg
			return nil
		})
	}

	// Jobs never fail the group, failures are collected per record.
	_ = g.Wait()

	result := &Result{Output: opts.Output}
	for _, pkg := range pkgs {
		if pkg != nil {
			result.Packages = append(result.Packages, *pkg)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrBuild, err)
	}

	slog.Info("rendered images",
		"written", len(result.Packages),
		"failed", len(opts.Definitions)-len(result.Packages),
	)

	return result, err
}

// Returns the identity of a record used in error messages.
func recordID(def image.Definition) string {
	return string(def.OsVersion) + "/" + def.PackageName
}

// Marks every record repeating the OS version and package name of an
// earlier one.
func duplicates(defs []image.Definition) []bool {
	seen := make(map[string]bool, len(defs))
	dups := make([]bool, len(defs))
	for i, def := range defs {
		id := recordID(def)
		dups[i] = seen[id]
		seen[id] = true
	}
	return dups
}
