package commands

import (
	"context"
	"fmt"
	"runtime"

	"github.com/leapstack-labs/pkgmanifest/internal/cli/output"
	"github.com/leapstack-labs/pkgmanifest/internal/manifest"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate one or more manifests",
		Long: `Compile each manifest and report whether it is valid.

Manifests are checked concurrently. The command exits with an error
if any manifest fails to compile.`,
		Example: `  # Check the configured manifest
  pkgmanifest check

  # Check several manifests
  pkgmanifest check crates/a/Cargo.toml crates/b/Cargo.toml`,
		RunE: runCheck,
	}
}

type checkResult struct {
	file     string
	manifest *core.Manifest
	err      error
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	files := args
	if len(files) == 0 {
		files = []string{cmdCtx.Cfg.Manifest}
	}

	results, err := checkManifests(cmd.Context(), cmdCtx, files)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(checkJSON(results, failed)); err != nil {
			return err
		}
	default:
		for _, res := range results {
			if res.err != nil {
				r.StatusLine(res.file, "error", res.err.Error())
				continue
			}
			r.StatusLine(res.file, "success", res.manifest.Summary().PackageID().String())
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d manifests failed", failed, len(results))
	}
	return nil
}

// checkManifests compiles files concurrently. Results keep the input order.
func checkManifests(ctx context.Context, cmdCtx *CommandContext, files []string) ([]checkResult, error) {
	results := make([]checkResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := cmdCtx.Load(file)
			if err != nil {
				cmdCtx.Logger.Debug("manifest failed", "file", file, "kind", manifest.KindOf(err).String(), "error", err)
			}
			results[i] = checkResult{file: file, manifest: m, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkJSON(results []checkResult, failed int) output.CheckOutput {
	out := output.CheckOutput{
		Results: make([]output.CheckResult, 0, len(results)),
		Failed:  failed,
	}
	for _, res := range results {
		cr := output.CheckResult{File: res.file, OK: res.err == nil}
		if res.err != nil {
			cr.Kind = manifest.KindOf(res.err).String()
			cr.Error = res.err.Error()
		} else {
			cr.PackageID = res.manifest.Summary().PackageID().String()
		}
		out.Results = append(out.Results, cr)
	}
	return out
}
