package manifest

import (
	"log/slog"

	"github.com/leapstack-labs/pkgmanifest/internal/tree"
)

// DefaultSourceExt is the file extension used for inferred target paths.
const DefaultSourceExt = "rs"

// Option configures a compilation.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	format    tree.Format
	sourceExt string
	strict    bool
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:    slog.New(slog.DiscardHandler),
		sourceExt: DefaultSourceExt,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for debug and leniency messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFormat sets the document format. The default is TOML.
func WithFormat(format tree.Format) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithSourceExt sets the extension of inferred target paths, with or without
// a leading dot.
func WithSourceExt(ext string) Option {
	return func(o *options) {
		for len(ext) > 0 && ext[0] == '.' {
			ext = ext[1:]
		}
		if ext != "" {
			o.sourceExt = ext
		}
	}
}

// WithStrict rejects manifests the default mode tolerates: malformed `lib` or
// `bin` sections, more than one `lib` entry, and dependency values that are
// neither strings nor tables.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}
