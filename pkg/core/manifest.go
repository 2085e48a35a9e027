package core

// DefaultTargetDir is the output directory of every compiled manifest.
const DefaultTargetDir = "target"

// Summary is the package identity plus its resolved dependencies.
type Summary struct {
	id           PackageID
	project      Project
	dependencies []Dependency
}

// NewSummary creates a summary for the project. deps is copied.
func NewSummary(project Project, deps []Dependency) Summary {
	return Summary{
		id:           project.PackageID(),
		project:      project,
		dependencies: append([]Dependency(nil), deps...),
	}
}

// PackageID returns the package identity.
func (s Summary) PackageID() PackageID { return s.id }

// Project returns the decoded project section.
func (s Summary) Project() Project { return s.project }

// Dependencies returns a copy of the resolved dependencies.
func (s Summary) Dependencies() []Dependency {
	return append([]Dependency(nil), s.dependencies...)
}

// Manifest is the compiled, validated description of a project.
type Manifest struct {
	summary   Summary
	targets   []Target
	targetDir string
}

// NewManifest creates a manifest. targets is copied and keeps its order.
func NewManifest(summary Summary, targets []Target, targetDir string) *Manifest {
	return &Manifest{
		summary:   summary,
		targets:   append([]Target(nil), targets...),
		targetDir: targetDir,
	}
}

// Summary returns the package summary.
func (m *Manifest) Summary() Summary { return m.summary }

// Targets returns a copy of the build targets, library first.
func (m *Manifest) Targets() []Target {
	return append([]Target(nil), m.targets...)
}

// TargetDir returns the output directory.
func (m *Manifest) TargetDir() string { return m.targetDir }

// Lib returns the library target, if any.
func (m *Manifest) Lib() (Target, bool) {
	for _, t := range m.targets {
		if t.IsLib() {
			return t, true
		}
	}
	return Target{}, false
}

// Bins returns the binary targets in declaration order.
func (m *Manifest) Bins() []Target {
	var bins []Target
	for _, t := range m.targets {
		if t.IsBin() {
			bins = append(bins, t)
		}
	}
	return bins
}
