package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/leapstack-labs/pkgmanifest/internal/tree"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
)

// Load reads and compiles the manifest at path. Unless WithFormat is given,
// the format is chosen from the file extension.
func Load(path string, opts ...Option) (*core.Manifest, error) {
	opts, err := withPathFormat(path, opts)
	if err != nil {
		return nil, err
	}

	data, err := readManifest(path)
	if err != nil {
		return nil, err
	}
	return compileFile(path, data, opts)
}

// withPathFormat appends a WithFormat option inferred from path when none is set.
func withPathFormat(path string, opts []Option) ([]Option, error) {
	if newOptions(opts).format != "" {
		return opts, nil
	}
	format, ok := tree.FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q (use .toml, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return append(slices.Clip(opts), WithFormat(format)), nil
}

func readManifest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return data, nil
}

// compileFile compiles data and attributes any manifest error to path.
func compileFile(path string, data []byte, opts []Option) (*core.Manifest, error) {
	m, err := Compile(data, opts...)
	if err != nil {
		var merr *Error
		if errors.As(err, &merr) {
			merr.File = path
		}
		return nil, err
	}
	return m, nil
}
