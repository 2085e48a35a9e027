package manifest

import (
	"maps"
	"slices"

	"github.com/leapstack-labs/pkgmanifest/internal/tree"
)

// DependencyKind distinguishes the two accepted shapes of a dependency entry.
type DependencyKind int

// Dependency entry shapes.
const (
	// SimpleDependency is a plain requirement string: `foo = "1.0"`.
	SimpleDependency DependencyKind = iota
	// DetailedDependency is a table with a version: `foo = { version = "1.0" }`.
	DetailedDependency
)

func (k DependencyKind) String() string {
	if k == DetailedDependency {
		return "detailed"
	}
	return "simple"
}

// RawDependency is one `dependencies` entry before its requirement is parsed.
type RawDependency struct {
	Kind        DependencyKind
	Requirement string

	// Extra holds every key of a detailed entry except `version`.
	Extra map[string]string
}

// resolveDependencies classifies every entry of the `dependencies` table.
// Entries are visited in name order so the first reported error is stable.
func resolveDependencies(root tree.Tree, o *options) (map[string]RawDependency, error) {
	deps := make(map[string]RawDependency)

	v, ok := root.Lookup(sectionDependencies)
	if !ok || v == nil {
		return deps, nil
	}
	table, ok := v.(map[string]any)
	if !ok {
		return nil, newError(KindInvalidDependenciesSection, sectionDependencies,
			"%q must be a table, got %s", sectionDependencies, shapeOf(v))
	}

	for _, name := range slices.Sorted(maps.Keys(table)) {
		switch val := table[name].(type) {
		case string:
			deps[name] = RawDependency{Kind: SimpleDependency, Requirement: val}
		case map[string]any:
			dep, err := detailedDependency(name, val)
			if err != nil {
				return nil, err
			}
			deps[name] = dep
		default:
			if o.strict {
				return nil, newError(KindInvalidDependencySpec, name,
					"dependency %q must be a string or a table, got %s", name, shapeOf(val))
			}
			o.logger.Debug("skipping dependency with unrecognized value", "dependency", name, "value", shapeOf(val))
		}
	}

	return deps, nil
}

func detailedDependency(name string, table map[string]any) (RawDependency, error) {
	details := make(map[string]string, len(table))
	for _, key := range slices.Sorted(maps.Keys(table)) {
		s, ok := table[key].(string)
		if !ok {
			return RawDependency{}, newError(KindInvalidDependencySpec, name,
				"dependency %q: value of %q must be a string, got %s", name, key, shapeOf(table[key]))
		}
		details[key] = s
	}

	version, ok := details["version"]
	if !ok {
		return RawDependency{}, newError(KindMissingVersion, name, "dependency %q must include a version", name)
	}
	delete(details, "version")

	dep := RawDependency{Kind: DetailedDependency, Requirement: version}
	if len(details) > 0 {
		dep.Extra = details
	}
	return dep, nil
}
