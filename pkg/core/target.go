package core

import "fmt"

// TargetKind distinguishes library targets from binary targets.
type TargetKind string

// Target kinds.
const (
	TargetLib TargetKind = "lib"
	TargetBin TargetKind = "bin"
)

// Target is a named build artifact with a resolved source entry path.
type Target struct {
	Kind TargetKind `json:"kind"`
	Name string     `json:"name"`
	Path string     `json:"path"`
}

// NewLibTarget creates a library target.
func NewLibTarget(name, path string) Target {
	return Target{Kind: TargetLib, Name: name, Path: path}
}

// NewBinTarget creates a binary target.
func NewBinTarget(name, path string) Target {
	return Target{Kind: TargetBin, Name: name, Path: path}
}

// IsLib reports whether the target is a library.
func (t Target) IsLib() bool { return t.Kind == TargetLib }

// IsBin reports whether the target is a binary.
func (t Target) IsBin() bool { return t.Kind == TargetBin }

func (t Target) String() string {
	return fmt.Sprintf("%s %s (%s)", t.Kind, t.Name, t.Path)
}
