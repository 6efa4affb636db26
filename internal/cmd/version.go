package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/tplmigrate/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show tplmigrate version information.

Displays:
  - tplmigrate version, commit, and build date
  - goja and CUE versions compiled into the binary`,
		RunE: runVersion,
	}
}

func runVersion(c *cobra.Command, _ []string) error {
	info := version.Get()

	out := c.OutOrStdout()
	fmt.Fprintf(out, "tplmigrate version %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:    %s\n", info.GitCommit)
	fmt.Fprintf(out, "  Built:     %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go:        %s (%s)\n", info.GoVersion, info.Platform)
	fmt.Fprintf(out, "  goja:      %s\n", info.GojaVersion)
	fmt.Fprintf(out, "  CUE SDK:   %s\n", info.CUEVersion)

	return nil
}
