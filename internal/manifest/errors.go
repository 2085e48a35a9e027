package manifest

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/pkgmanifest/internal/tree"
)

// Kind classifies compilation failures.
type Kind int

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindSyntax
	KindMissingSection
	KindSchemaMismatch
	KindInvalidDependenciesSection
	KindInvalidDependencySpec
	KindMissingVersion
	KindInvalidVersionRequirement
)

// Sentinel errors, one per Kind.
var (
	ErrSyntax                     = errors.New("syntax error")
	ErrMissingSection             = errors.New("missing section")
	ErrSchemaMismatch             = errors.New("schema mismatch")
	ErrInvalidDependenciesSection = errors.New("invalid dependencies section")
	ErrInvalidDependencySpec      = errors.New("invalid dependency specification")
	ErrMissingVersion             = errors.New("missing dependency version")
	ErrInvalidVersionRequirement  = errors.New("invalid version requirement")

	// ErrUnsupportedFormat is returned when no parser handles the requested format.
	ErrUnsupportedFormat = tree.ErrUnsupportedFormat
)

var kindSentinels = map[Kind]error{
	KindSyntax:                     ErrSyntax,
	KindMissingSection:             ErrMissingSection,
	KindSchemaMismatch:             ErrSchemaMismatch,
	KindInvalidDependenciesSection: ErrInvalidDependenciesSection,
	KindInvalidDependencySpec:      ErrInvalidDependencySpec,
	KindMissingVersion:             ErrMissingVersion,
	KindInvalidVersionRequirement:  ErrInvalidVersionRequirement,
}

func (k Kind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return "unknown"
}

// Error is the single error type returned by Compile and Load.
type Error struct {
	Kind Kind

	// File is set when the manifest was read from disk.
	File string

	// Name is the section or dependency the failure refers to, if any.
	Name string

	Err error
}

func (e *Error) Error() string {
	summary := "manifest is invalid"
	if e.Kind == KindSyntax {
		summary = "manifest is not a well-formed document"
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.File, summary, e.Err)
	}
	return fmt.Sprintf("%s: %v", summary, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of a compilation error, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, name string, format string, args ...any) *Error {
	return &Error{Kind: kind, Name: name, Err: fmt.Errorf(format, args...)}
}

// shapeOf names the manifest-level type of a tree value for error messages.
func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "a string"
	case map[string]any:
		return "a table"
	case []any, []map[string]any:
		return "an array"
	case bool:
		return "a boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "an integer"
	case float32, float64:
		return "a float"
	default:
		return fmt.Sprintf("a %T", v)
	}
}
