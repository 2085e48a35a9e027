package commands

import (
	"github.com/leapstack-labs/pkgmanifest/internal/manifest"
	"github.com/spf13/cobra"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Format string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Print the normalized manifest",
		Long: `Compile a manifest and print it back in manifest form, with every
target path made explicit. The result compiles to the same manifest.`,
		Example: `  pkgmanifest export
  pkgmanifest export Cargo.toml --format yaml > manifest.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "toml", "Output format (toml|yaml|json)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *ExportOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	m, err := cmdCtx.Load(cmdCtx.ManifestPath(args))
	if err != nil {
		return err
	}

	data, err := manifest.Encode(m, opts.Format)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
