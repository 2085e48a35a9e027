package commands

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/leapstack-labs/pkgmanifest/internal/cli/config"
	"github.com/leapstack-labs/pkgmanifest/internal/cli/output"
	"github.com/leapstack-labs/pkgmanifest/internal/manifest"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Cache    *manifest.Cache
}

// NewCommandContext builds a CommandContext from the config and logger
// stored on the command context by the root command.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	cache, err := manifest.NewCache(manifest.DefaultCacheSize, cfg.CompileOptions(logger)...)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Cache:    cache,
	}, nil
}

// ManifestPath returns the manifest named on the command line, or the
// configured default.
func (c *CommandContext) ManifestPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.Cfg.Manifest
}

// Load compiles the manifest at path with the configured options.
func (c *CommandContext) Load(path string) (*core.Manifest, error) {
	m, hit, err := c.Cache.Load(path)
	if hit {
		c.Logger.Debug("reusing compiled manifest", "file", path)
	}
	return m, err
}

// Retry settings for reading a manifest that is briefly missing, as happens
// while an editor replaces the file.
const (
	readRetryInterval = 20 * time.Millisecond
	readRetries       = 10
)

// LoadWithRetry is Load, retrying while the file does not exist.
func (c *CommandContext) LoadWithRetry(ctx context.Context, path string) (m *core.Manifest, hit bool, err error) {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(readRetryInterval), readRetries), ctx)

	err = backoff.Retry(func() error {
		var lerr error
		m, hit, lerr = c.Cache.Load(path)
		if lerr != nil && !errors.Is(lerr, fs.ErrNotExist) {
			return backoff.Permanent(lerr)
		}
		return lerr
	}, b)
	return m, hit, err
}
