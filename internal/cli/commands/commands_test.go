package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/pkgmanifest/internal/cli/config"
	"github.com/leapstack-labs/pkgmanifest/internal/cli/output"
	"github.com/leapstack-labs/pkgmanifest/internal/cli/testutil"
	"github.com/leapstack-labs/pkgmanifest/internal/manifest"
	"github.com/leapstack-labs/pkgmanifest/internal/tree"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(config.WithConfig(context.Background(), cfg))
	return buf.String(), err
}

func configWithOutput(mode string) *config.Config {
	cfg := config.Default()
	cfg.OutputFormat = mode
	return cfg
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewCheckCommand(), use: "check [files...]"},
		{cmd: NewShowCommand(), use: "show [file]"},
		{cmd: NewExportCommand(), use: "export [file]", flags: []string{"format"}},
		{cmd: NewWatchCommand(), use: "watch [file]"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"good/Cargo.toml": testutil.ValidManifest,
		"bad/Cargo.toml":  testutil.InvalidManifest,
	})
	good := filepath.Join(dir, "good", "Cargo.toml")
	bad := filepath.Join(dir, "bad", "Cargo.toml")

	t.Run("all valid", func(t *testing.T) {
		out, err := executeCommand(t, NewCheckCommand(), configWithOutput("markdown"), good)
		require.NoError(t, err)
		assert.Equal(t, "- ✓ "+good+" demo v1.0.0\n", out)
	})

	t.Run("one failure", func(t *testing.T) {
		out, err := executeCommand(t, NewCheckCommand(), configWithOutput("markdown"), good, bad)
		require.Error(t, err)
		assert.Equal(t, "1 of 2 manifests failed", err.Error())
		assert.Contains(t, out, "✓ "+good)
		assert.Contains(t, out, "✗ "+bad)
		testutil.AssertNoANSI(t, out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, NewCheckCommand(), configWithOutput("json"), good, bad)
		require.Error(t, err)
		assert.NotContains(t, out, "Error:")

		var got output.CheckOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got.Results, 2)
		assert.Equal(t, 1, got.Failed)

		assert.True(t, got.Results[0].OK)
		assert.Equal(t, "demo v1.0.0", got.Results[0].PackageID)

		assert.False(t, got.Results[1].OK)
		assert.Equal(t, manifest.KindMissingVersion.String(), got.Results[1].Kind)
		assert.Contains(t, got.Results[1].Error, "foo")
	})

	t.Run("default manifest from config", func(t *testing.T) {
		cfg := configWithOutput("markdown")
		cfg.Manifest = good
		out, err := executeCommand(t, NewCheckCommand(), cfg)
		require.NoError(t, err)
		assert.Contains(t, out, "demo v1.0.0")
	})

	t.Run("missing file", func(t *testing.T) {
		out, err := executeCommand(t, NewCheckCommand(), configWithOutput("markdown"), filepath.Join(dir, "nope.toml"))
		require.Error(t, err)
		assert.Contains(t, out, "failed to read manifest")
	})
}

func TestCheck_Strict(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"Cargo.toml": "[project]\nname = \"x\"\nversion = \"1.0.0\"\n\n[dependencies]\nfoo = 42\n",
	})
	file := filepath.Join(dir, "Cargo.toml")

	_, err := executeCommand(t, NewCheckCommand(), configWithOutput("markdown"), file)
	require.NoError(t, err, "non-string, non-table dependencies are skipped by default")

	cfg := configWithOutput("markdown")
	cfg.Strict = true
	out, err := executeCommand(t, NewCheckCommand(), cfg, file)
	require.Error(t, err)
	assert.Contains(t, out, "foo")
}

func TestShow(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{"Cargo.toml": testutil.ValidManifest})
	file := filepath.Join(dir, "Cargo.toml")

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, NewShowCommand(), configWithOutput("json"), file)
		require.NoError(t, err)

		var got output.ManifestOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))

		assert.Equal(t, "demo v1.0.0", got.PackageID)
		assert.Equal(t, "target", got.TargetDir)
		assert.Equal(t, []string{"Ada <ada@example.com>"}, got.Authors)
		assert.Equal(t, []output.TargetInfo{
			{Kind: "lib", Name: "demo", Path: "src/demo.rs"},
			{Kind: "bin", Name: "demo-cli", Path: "src/bin/demo-cli.rs"},
		}, got.Targets)

		require.Len(t, got.Dependencies, 2)
		assert.Equal(t, output.DependencyInfo{Name: "serde", Requirement: "^1.0"}, got.Dependencies[0])
		assert.Equal(t, "tokio", got.Dependencies[1].Name)
		assert.Equal(t, map[string]string{"git": "https://github.com/tokio-rs/tokio"}, got.Dependencies[1].Extra)
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := executeCommand(t, NewShowCommand(), configWithOutput("markdown"), file)
		require.NoError(t, err)

		assert.Contains(t, out, "# demo v1.0.0")
		assert.Contains(t, out, "## Targets")
		assert.Contains(t, out, "| bin | demo-cli | src/bin/demo-cli.rs |")
		assert.Contains(t, out, "git=https://github.com/tokio-rs/tokio")
		testutil.AssertValidMarkdown(t, out)
		testutil.AssertNoANSI(t, out)
	})

	t.Run("source ext", func(t *testing.T) {
		cfg := configWithOutput("json")
		cfg.SourceExt = "zig"
		out, err := executeCommand(t, NewShowCommand(), cfg, file)
		require.NoError(t, err)
		assert.Contains(t, out, "src/bin/demo-cli.zig")
	})

	t.Run("invalid manifest", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.toml")
		testutil.WriteFile(t, bad, testutil.InvalidManifest)

		_, err := executeCommand(t, NewShowCommand(), configWithOutput("json"), bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, manifest.ErrMissingVersion)
	})
}

func TestExport_RoundTrip(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{"Cargo.toml": testutil.ValidManifest})
	file := filepath.Join(dir, "Cargo.toml")

	original, err := manifest.Load(file)
	require.NoError(t, err)

	tests := []struct {
		format string
		tree   tree.Format
	}{
		{format: "toml", tree: tree.FormatTOML},
		{format: "yaml", tree: tree.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := executeCommand(t, NewExportCommand(), config.Default(), file, "--format", tt.format)
			require.NoError(t, err)

			again, err := manifest.Compile([]byte(out), manifest.WithFormat(tt.tree))
			require.NoError(t, err)
			assert.Equal(t, original.Targets(), again.Targets())
			assert.Equal(t, original.Summary().PackageID(), again.Summary().PackageID())
			require.Len(t, again.Summary().Dependencies(), 2)
		})
	}

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, NewExportCommand(), config.Default(), file, "-f", "json")
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Contains(t, doc, "project")
		assert.Contains(t, doc, "dependencies")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := executeCommand(t, NewExportCommand(), config.Default(), file, "--format", "ini")
		require.Error(t, err)
		assert.ErrorIs(t, err, manifest.ErrUnsupportedFormat)
	})
}

func TestWatch_RecompilesOnWrite(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{"Cargo.toml": testutil.ValidManifest})
	file := filepath.Join(dir, "Cargo.toml")

	cmd := NewWatchCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd.SetContext(config.WithConfig(ctx, configWithOutput("markdown")))

	compiled := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, cmd, []string{file}, compiled) }()

	waitFor := func(what string) {
		t.Helper()
		select {
		case <-compiled:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", what)
		}
	}

	waitFor("initial compilation")
	testutil.WriteFile(t, file, testutil.InvalidManifest)
	waitFor("recompilation")

	cancel()
	require.NoError(t, <-done)

	out := buf.String()
	assert.Contains(t, out, "✓ "+file+" demo v1.0.0")
	assert.Contains(t, out, "✗ "+file)
}

func TestLoadWithRetry(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Cargo.toml")

	cmd := NewCheckCommand()
	cmd.SetContext(config.WithConfig(context.Background(), config.Default()))
	cmdCtx, err := NewCommandContext(cmd)
	require.NoError(t, err)

	t.Run("file appears while retrying", func(t *testing.T) {
		go func() {
			time.Sleep(2 * readRetryInterval)
			testutil.WriteFile(t, file, testutil.ValidManifest)
		}()

		m, hit, err := cmdCtx.LoadWithRetry(context.Background(), file)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, "demo v1.0.0", m.Summary().PackageID().String())

		_, hit, err = cmdCtx.LoadWithRetry(context.Background(), file)
		require.NoError(t, err)
		assert.True(t, hit)
	})

	t.Run("compile errors are not retried", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.toml")
		testutil.WriteFile(t, bad, testutil.InvalidManifest)

		_, _, err := cmdCtx.LoadWithRetry(context.Background(), bad)
		require.ErrorIs(t, err, manifest.ErrMissingVersion)
	})
}
