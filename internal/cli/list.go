package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/recipe"
)

// Represents the 'bcigen list' command.
type ListCmd struct {
	Selection SelectFlags `embed:""`
}

// Executes the list command.
func (c *ListCmd) Run(ctx context.Context) error {
	defs, err := c.Selection.definitions()
	if err != nil {
		return err
	}
	return writeList(os.Stdout, defs)
}

// Writes one row per definition: OS version, build package, primary format,
// tags and target platforms. Invalid definitions are listed with their error.
func writeList(w io.Writer, defs []image.Definition) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OS\tPACKAGE\tFORMAT\tTAGS\tPLATFORMS")

	for _, def := range defs {
		n, err := image.Normalize(def)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\terror: %v\n", def.OsVersion, def.PackageName, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			n.OsVersion,
			n.PackageName,
			recipe.FormatOf(n.BuildRecipeType),
			strings.Join(n.Tags, ","),
			strings.Join(targetPlatforms(n), ","),
		)
	}

	return tw.Flush()
}

// Returns the OCI platforms an image is built for.
func targetPlatforms(n *image.Normalized) []string {
	archs := n.ExclusiveArch
	if len(archs) == 0 {
		archs = n.OS.Archs
	}

	var out []string
	for _, a := range archs {
		if n.OS.HasArch(a) {
			out = append(out, a.PlatformString())
		}
	}
	return out
}
