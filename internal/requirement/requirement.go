// Package requirement parses dependency version requirements.
//
// Requirements use the comparison syntax of Masterminds/semver: exact versions,
// comparison operators, caret and tilde ranges, wildcards, "," for AND and
// "||" for OR.
package requirement

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
)

// ParseError reports a requirement string that could not be parsed.
type ParseError struct {
	Name        string
	Requirement string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version requirement %q for dependency %q: %v", e.Requirement, e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// constraintMatcher adapts semver constraints to core.Matcher.
type constraintMatcher struct {
	c *semver.Constraints
}

func (m constraintMatcher) Matches(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return m.c.Check(v)
}

// Parse parses raw into a Requirement.
func Parse(raw string) (core.Requirement, error) {
	if strings.TrimSpace(raw) == "" {
		return core.Requirement{}, fmt.Errorf("empty requirement")
	}
	c, err := semver.NewConstraint(raw)
	if err != nil {
		return core.Requirement{}, err
	}
	return core.NewRequirement(raw, constraintMatcher{c: c}), nil
}

// ParseDependency builds a dependency named name from its requirement string.
// extra is carried on the dependency unchanged.
func ParseDependency(name, raw string, extra map[string]string) (core.Dependency, error) {
	req, err := Parse(raw)
	if err != nil {
		return core.Dependency{}, &ParseError{Name: name, Requirement: raw, Err: err}
	}
	return core.NewDependency(name, req, extra), nil
}
