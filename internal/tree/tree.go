// Package tree decodes raw manifest bytes into a generic configuration tree.
//
// A Tree is the dynamically typed value produced by the format parsers:
// tables are map[string]any, arrays are []any and everything else is a scalar.
// Trees are short-lived; the manifest compiler discards them once the typed
// sections have been extracted.
package tree

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format identifies the syntax of a manifest document.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for formats no parser is registered for.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Tree is the root table of a decoded document.
type Tree map[string]any

// Parse decodes data in the given format. An empty document yields an empty tree.
func Parse(data []byte, format Format) (Tree, error) {
	var (
		root map[string]any
		err  error
	)

	switch format {
	case FormatTOML, "":
		err = toml.Unmarshal(data, &root)
	case FormatYAML:
		root, err = kyaml.Parser().Unmarshal(data)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, newSyntaxError(format, err)
	}

	if root == nil {
		root = make(map[string]any)
	}
	return Tree(root), nil
}

// Lookup returns the value stored under a top-level key.
func (t Tree) Lookup(key string) (any, bool) {
	v, ok := t[key]
	return v, ok
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// ParseFormat converts a user supplied name into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q (use toml or yaml)", ErrUnsupportedFormat, name)
	}
}
