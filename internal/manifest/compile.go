package manifest

import (
	"errors"
	"maps"
	"slices"

	"github.com/leapstack-labs/pkgmanifest/internal/requirement"
	"github.com/leapstack-labs/pkgmanifest/internal/tree"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
)

// Compile turns a raw manifest document into a validated manifest.
// It holds no state and is safe for concurrent use.
func Compile(data []byte, opts ...Option) (*core.Manifest, error) {
	o := newOptions(opts)

	root, err := tree.Parse(data, o.format)
	if err != nil {
		var serr *tree.SyntaxError
		if errors.As(err, &serr) {
			return nil, &Error{Kind: KindSyntax, Err: err}
		}
		return nil, err
	}

	return compileTree(root, o)
}

func compileTree(root tree.Tree, o *options) (*core.Manifest, error) {
	s, err := decodeSections(root, o)
	if err != nil {
		return nil, err
	}

	raw, err := resolveDependencies(root, o)
	if err != nil {
		return nil, err
	}

	deps, err := parseRequirements(raw)
	if err != nil {
		return nil, err
	}

	targets := normalizeTargets(s.lib, s.bin, o)
	if len(targets) == 0 {
		o.logger.Debug("manifest has no build targets", "package", s.project.PackageID().String())
	}

	summary := core.NewSummary(s.project, deps)
	m := core.NewManifest(summary, targets, core.DefaultTargetDir)

	o.logger.Debug("compiled manifest",
		"package", summary.PackageID().String(),
		"dependencies", len(deps),
		"targets", len(targets))

	return m, nil
}

// parseRequirements parses every requirement, in dependency name order.
func parseRequirements(raw map[string]RawDependency) ([]core.Dependency, error) {
	deps := make([]core.Dependency, 0, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		entry := raw[name]
		dep, err := requirement.ParseDependency(name, entry.Requirement, entry.Extra)
		if err != nil {
			return nil, &Error{Kind: KindInvalidVersionRequirement, Name: name, Err: err}
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
