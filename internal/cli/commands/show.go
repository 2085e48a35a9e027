package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/pkgmanifest/internal/cli/output"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Show the compiled manifest",
		Long: `Compile a manifest and print its identity, dependencies and build
targets with every inferred path filled in.`,
		Example: `  pkgmanifest show
  pkgmanifest show Cargo.toml -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	file := cmdCtx.ManifestPath(args)
	m, err := cmdCtx.Load(file)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(manifestJSON(file, m))
	case output.ModeMarkdown:
		showMarkdown(r, file, m)
	default:
		showText(r, m)
	}
	return nil
}

func showText(r *output.Renderer, m *core.Manifest) {
	styles := r.Styles()
	p := m.Summary().Project()

	r.Header(1, m.Summary().PackageID().String())
	if p.Description != "" {
		r.Println(p.Description)
	}
	if len(p.Authors) > 0 {
		r.Println(styles.Muted.Render("by " + strings.Join(p.Authors, ", ")))
	}
	r.Println(styles.Muted.Render("output: " + m.TargetDir()))
	r.Println("")

	r.Header(2, "Dependencies")
	r.Table([]string{"Name", "Requirement", "Extra"}, dependencyRows(m))
	r.Println("")

	r.Header(2, "Targets")
	r.Table([]string{"Kind", "Name", "Path"}, targetRows(m))
}

func showMarkdown(r *output.Renderer, file string, m *core.Manifest) {
	p := m.Summary().Project()

	r.Println(output.FormatHeader(1, m.Summary().PackageID().String()))
	r.Println("")
	r.Println(output.FormatKeyValue("File", file))
	if p.Description != "" {
		r.Println(output.FormatKeyValue("Description", p.Description))
	}
	if len(p.Authors) > 0 {
		r.Println(output.FormatKeyValue("Authors", strings.Join(p.Authors, ", ")))
	}
	r.Println(output.FormatKeyValue("Output", m.TargetDir()))
	r.Println("")

	r.Println(output.FormatHeader(2, "Dependencies"))
	r.Println("")
	r.Table([]string{"Name", "Requirement", "Extra"}, dependencyRows(m))
	r.Println("")

	r.Println(output.FormatHeader(2, "Targets"))
	r.Println("")
	r.Table([]string{"Kind", "Name", "Path"}, targetRows(m))
}

func dependencyRows(m *core.Manifest) [][]string {
	deps := m.Summary().Dependencies()
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{d.Name, d.Requirement.String(), formatExtra(d.Extra)})
	}
	return rows
}

func targetRows(m *core.Manifest) [][]string {
	targets := m.Targets()
	rows := make([][]string, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, []string{string(t.Kind), t.Name, t.Path})
	}
	return rows
}

func formatExtra(extra map[string]string) string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, extra[k]))
	}
	return strings.Join(parts, " ")
}

func manifestJSON(file string, m *core.Manifest) output.ManifestOutput {
	s := m.Summary()
	p := s.Project()

	out := output.ManifestOutput{
		File:         file,
		PackageID:    s.PackageID().String(),
		Name:         p.Name,
		Version:      p.Version,
		Authors:      p.Authors,
		Description:  p.Description,
		TargetDir:    m.TargetDir(),
		Dependencies: []output.DependencyInfo{},
		Targets:      []output.TargetInfo{},
	}
	for _, d := range s.Dependencies() {
		out.Dependencies = append(out.Dependencies, output.DependencyInfo{
			Name:        d.Name,
			Requirement: d.Requirement.String(),
			Extra:       d.Extra,
		})
	}
	for _, t := range m.Targets() {
		out.Targets = append(out.Targets, output.TargetInfo{Kind: string(t.Kind), Name: t.Name, Path: t.Path})
	}
	return out
}
