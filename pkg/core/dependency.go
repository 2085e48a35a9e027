package core

// Matcher reports whether a concrete version satisfies a parsed requirement.
type Matcher interface {
	Matches(version string) bool
}

// Requirement is a version requirement in both raw and parsed form.
type Requirement struct {
	raw     string
	matcher Matcher
}

// NewRequirement pairs a raw requirement string with its parsed matcher.
func NewRequirement(raw string, m Matcher) Requirement {
	return Requirement{raw: raw, matcher: m}
}

// String returns the requirement exactly as it was written in the manifest.
func (r Requirement) String() string { return r.raw }

// Matches reports whether version satisfies the requirement.
// A requirement without a matcher matches nothing.
func (r Requirement) Matches(version string) bool {
	if r.matcher == nil {
		return false
	}
	return r.matcher.Matches(version)
}

// Dependency is a named dependency ready for graph resolution.
type Dependency struct {
	Name        string
	Requirement Requirement

	// Extra holds auxiliary keys of a detailed declaration (e.g. registry, git).
	// They are carried verbatim and never interpreted here.
	Extra map[string]string
}

// NewDependency creates a dependency. Extra is copied.
func NewDependency(name string, req Requirement, extra map[string]string) Dependency {
	var cp map[string]string
	if len(extra) > 0 {
		cp = make(map[string]string, len(extra))
		for k, v := range extra {
			cp[k] = v
		}
	}
	return Dependency{Name: name, Requirement: req, Extra: cp}
}

// HasExtra reports whether the dependency carries auxiliary metadata.
func (d Dependency) HasExtra() bool {
	return len(d.Extra) > 0
}
