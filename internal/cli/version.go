package cli

import (
	"context"
	"fmt"

	"github.com/suse-bci/bcigen/internal"
)

// Represents the 'bcigen version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.Name, internal.VersionString())
	return nil
}
