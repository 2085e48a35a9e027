package manifest

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/pkgmanifest/internal/tree"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
)

// Top-level manifest sections.
const (
	sectionProject      = "project"
	sectionLib          = "lib"
	sectionBin          = "bin"
	sectionDependencies = "dependencies"
)

// RawTarget is a `lib` or `bin` entry as declared in a manifest.
// An empty Path means the path is inferred.
type RawTarget struct {
	Name string `koanf:"name"`
	Path string `koanf:"path"`
}

// sections holds the typed sections extracted from a manifest tree.
// A nil lib or bin means the section was not provided.
type sections struct {
	project core.Project
	lib     []RawTarget
	bin     []RawTarget
}

// decodeSections extracts `project`, `lib` and `bin` from root.
func decodeSections(root tree.Tree, o *options) (*sections, error) {
	// No delimiter on load: dotted keys inside tables stay intact.
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(root, ""), nil); err != nil {
		return nil, &Error{Kind: KindSchemaMismatch, Err: fmt.Errorf("failed to load manifest tree: %w", err)}
	}

	var s sections
	if !present(root, sectionProject) {
		return nil, newError(KindMissingSection, sectionProject, "missing required section %q", sectionProject)
	}
	if err := decodePath(k, sectionProject, &s.project); err != nil {
		return nil, schemaMismatch(sectionProject, err)
	}
	if err := s.project.Validate(); err != nil {
		return nil, schemaMismatch(sectionProject, err)
	}

	var err error
	if s.lib, err = decodeTargets(k, root, sectionLib, o); err != nil {
		return nil, err
	}
	if o.strict && len(s.lib) > 1 {
		return nil, newError(KindSchemaMismatch, sectionLib,
			"section %q declares %d libraries, only one is allowed", sectionLib, len(s.lib))
	}
	if s.bin, err = decodeTargets(k, root, sectionBin, o); err != nil {
		return nil, err
	}

	return &s, nil
}

// decodeTargets decodes an optional target section. Outside strict mode a
// section that fails to decode is reported as not provided.
func decodeTargets(k *koanf.Koanf, root tree.Tree, section string, o *options) ([]RawTarget, error) {
	if !present(root, section) {
		return nil, nil
	}

	var targets []RawTarget
	err := decodePath(k, section, &targets)
	if err == nil {
		err = validateTargets(targets)
	}
	if err != nil {
		if o.strict {
			return nil, schemaMismatch(section, err)
		}
		o.logger.Warn("ignoring malformed target section", "section", section, "error", err)
		return nil, nil
	}

	if targets == nil {
		targets = []RawTarget{}
	}
	return targets, nil
}

func validateTargets(targets []RawTarget) error {
	for i, t := range targets {
		if t.Name == "" {
			return fmt.Errorf("entry %d: name is required", i)
		}
	}
	return nil
}

// decodePath decodes the value at path into out without weak type conversion,
// so `name = 1` is a mismatch rather than "1".
func decodePath(k *koanf.Koanf, path string, out any) error {
	return k.UnmarshalWithConf(path, out, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: false,
		},
	})
}

func present(root tree.Tree, section string) bool {
	v, ok := root.Lookup(section)
	return ok && v != nil
}

func schemaMismatch(section string, err error) *Error {
	return &Error{
		Kind: KindSchemaMismatch,
		Name: section,
		Err:  fmt.Errorf("section %q does not match its schema: %w", section, err),
	}
}
