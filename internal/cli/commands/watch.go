package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
	"github.com/spf13/cobra"
)

const watchDebounce = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [file]",
		Short: "Recompile a manifest whenever it changes",
		Long: `Watch a manifest and recompile it after every write, printing a
status line per compilation. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args, nil)
		},
	}
}

// runWatch compiles once, then after every debounced change until ctx ends.
// compiled, when set, receives a signal after each compilation.
func runWatch(ctx context.Context, cmd *cobra.Command, args []string, compiled chan<- struct{}) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	file := cmdCtx.ManifestPath(args)

	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	changes := make(chan struct{}, 1)
	var last *core.Manifest
	compile := func() {
		m, hit, err := cmdCtx.LoadWithRetry(ctx, file)
		switch {
		case err != nil:
			cmdCtx.Renderer.StatusLine(file, "error", err.Error())
		case hit && m == last:
			cmdCtx.Logger.Debug("manifest content unchanged", "file", file)
		default:
			cmdCtx.Renderer.StatusLine(file, "success", m.Summary().PackageID().String())
		}
		last = m
		if compiled != nil {
			select {
			case compiled <- struct{}{}:
			case <-ctx.Done():
			}
		}
	}

	compile()
	cmdCtx.Logger.Debug("watching manifest", "file", abs)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})

		case <-changes:
			cmdCtx.Logger.Debug("manifest changed, recompiling", "file", abs)
			compile()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}
