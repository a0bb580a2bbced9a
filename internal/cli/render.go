package cli

import (
	"context"
	"log/slog"

	"github.com/suse-bci/bcigen/internal/build"
	"github.com/suse-bci/bcigen/internal/paths"
)

// Represents the 'bcigen render' command.
type RenderCmd struct {
	Selection SelectFlags `embed:""`

	Output     string `short:"o" help:"Directory to write build packages to." placeholder:"DIR" type:"path"`
	AllFormats bool   `help:"Also render the secondary recipe format of every image."`
	Archive    bool   `help:"Bundle every build package into a tar archive."`
	Jobs       int    `short:"j" help:"Images rendered in parallel. Defaults to the number of CPUs." placeholder:"N"`
}

// Executes the render command.
//
// Writes one build package per selected image. Failing images are reported
// together once every image has been processed.
func (c *RenderCmd) Run(ctx context.Context) error {
	defs, err := c.Selection.definitions()
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = paths.Output()
	}

	result, err := build.Run(ctx, build.Options{
		Definitions: defs,
		Output:      output,
		AllFormats:  c.AllFormats,
		Archive:     c.Archive,
		Jobs:        c.Jobs,
	})

	if result != nil {
		for _, pkg := range result.Packages {
			for _, a := range pkg.Artifacts {
				slog.Debug("artifact", "os", pkg.OsVersion, "package", pkg.PackageName, "file", a.Name, "digest", a.Digest)
			}
			if pkg.Archive != nil {
				slog.Info("archived", "os", pkg.OsVersion, "package", pkg.PackageName, "file", pkg.Archive.Name, "digest", pkg.Archive.Digest)
			}
		}
	}

	return err
}
