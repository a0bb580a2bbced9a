package build

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/paths"
	"github.com/suse-bci/bcigen/internal/recipe"
)

// Holds the state of writing one build package.
type packageWriter struct {
	def        image.Definition // Record to render.
	output     string           // Root directory of the build packages.
	allFormats bool             // Also render the secondary format.
	archive    bool             // Bundle the package into a tar archive.
}

// Creates a new [packageWriter] for a record.
func newPackageWriter(def image.Definition, opts Options) *packageWriter {
	return &packageWriter{
		def:        def,
		output:     opts.Output,
		allFormats: opts.AllFormats,
		archive:    opts.Archive,
	}
}

// Normalizes, renders and writes the package.
//
// Nothing is written unless every file renders. The primary format must
// render; a secondary format that cannot express the image is skipped. When
// writing fails the package directory is removed.
func (w *packageWriter) write() (_ *Package, err error) {
	n, err := image.Normalize(w.def)
	if err != nil {
		return nil, err
	}

	files, skipped, err := w.render(n)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(w.output, string(n.OsVersion), n.PackageName)
	slog.Debug("writing package", "os", n.OsVersion, "package", n.PackageName, "dir", dir, "files", len(files))

	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(dir); rmErr != nil {
				slog.Warn("failed to remove partial package", "dir", dir, "error", rmErr)
			}
		}
	}()

	pkg := &Package{
		OsVersion:   string(n.OsVersion),
		PackageName: n.PackageName,
		Dir:         dir,
		Skipped:     skipped,
	}

	for _, name := range sortedNames(files) {
		content := files[name]
		if err := os.WriteFile(filepath.Join(dir, name), content, paths.DefaultFileMode); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
		}
		pkg.Artifacts = append(pkg.Artifacts, Artifact{
			Name:   name,
			Size:   int64(len(content)),
			Digest: digest.FromBytes(content),
		})
	}

	if w.archive {
		a, err := archivePackage(dir, filepath.Join(w.output, string(n.OsVersion), n.PackageName+".tar"))
		if err != nil {
			return nil, err
		}
		pkg.Archive = a
	}

	return pkg, nil
}

// Renders every file of the package, keyed by file name.
//
// Returns the names of the secondary formats that were skipped.
func (w *packageWriter) render(n *image.Normalized) (map[string][]byte, []string, error) {
	files := make(map[string][]byte)
	var rendered []recipe.Format
	var skipped []string

	for i, f := range recipe.Formats(n, w.allFormats) {
		out, err := recipe.Render(n, f)
		if err != nil {
			if i > 0 && errors.Is(err, recipe.ErrFormatIncapable) {
				slog.Debug("skipping format", "os", n.OsVersion, "package", n.PackageName, "format", f, "reason", err)
				skipped = append(skipped, f.String())
				continue
			}
			return nil, nil, err
		}
		files[f.FileName(n)] = []byte(out)
		rendered = append(rendered, f)
	}

	if len(n.ReplacementsViaService) > 0 {
		svc, err := recipe.RenderService(n, rendered)
		if err != nil {
			return nil, nil, err
		}
		files[recipe.ServiceFileName] = []byte(svc)
	}

	for name, content := range n.ExtraFiles {
		if err := parseExtraFile(name); err != nil {
			return nil, nil, err
		}
		if _, ok := files[name]; ok {
			return nil, nil, fmt.Errorf("%w: %q clashes with a generated file", ErrExtraFile, name)
		}
		files[name] = []byte(content)
	}

	return files, skipped, nil
}

// Checks that an extra file name denotes a file directly inside the
// package directory.
func parseExtraFile(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrExtraFile)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrExtraFile, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q is not a plain file name", ErrExtraFile, name)
	}
	return nil
}

func sortedNames(files map[string][]byte) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
