package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/pkgmanifest/internal/tree"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode serializes a compiled manifest back into the manifest schema.
// Every target carries its resolved path, so compiling the output yields the
// same targets and dependencies. format is one of toml, yaml or json.
func Encode(m *core.Manifest, format string) ([]byte, error) {
	doc := Document(m)

	if format == "json" {
		return json.MarshalIndent(doc, "", "  ")
	}
	if format == "" {
		format = string(tree.FormatTOML)
	}

	f, err := tree.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w %q (use toml, yaml or json)", ErrUnsupportedFormat, format)
	}
	switch f {
	case tree.FormatYAML:
		return yaml.Marshal(doc)
	default:
		return toml.Marshal(doc)
	}
}

// Document converts a manifest into the generic tree it would be declared as.
func Document(m *core.Manifest) map[string]any {
	p := m.Summary().Project()

	project := map[string]any{
		"name":    p.Name,
		"version": p.Version,
	}
	if len(p.Authors) > 0 {
		project["authors"] = p.Authors
	}
	if p.Description != "" {
		project["description"] = p.Description
	}
	doc := map[string]any{sectionProject: project}

	var libs, bins []map[string]any
	for _, t := range m.Targets() {
		entry := map[string]any{"name": t.Name, "path": t.Path}
		switch t.Kind {
		case core.TargetLib:
			libs = append(libs, entry)
		case core.TargetBin:
			bins = append(bins, entry)
		}
	}
	if len(libs) > 0 {
		doc[sectionLib] = libs
	}
	if len(bins) > 0 {
		doc[sectionBin] = bins
	}

	deps := m.Summary().Dependencies()
	if len(deps) > 0 {
		table := make(map[string]any, len(deps))
		for _, d := range deps {
			if !d.HasExtra() {
				table[d.Name] = d.Requirement.String()
				continue
			}
			detailed := map[string]any{"version": d.Requirement.String()}
			for k, v := range d.Extra {
				detailed[k] = v
			}
			table[d.Name] = detailed
		}
		doc[sectionDependencies] = table
	}

	return doc
}
