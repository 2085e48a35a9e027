package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the pkgmanifest version and the manifest formats it compiles.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pkgmanifest v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Manifest formats: toml, yaml (export also writes json)")
		},
	}
}
