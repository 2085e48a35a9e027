package manifest

import (
	"errors"
	"sync"
	"testing"

	"github.com/leapstack-labs/pkgmanifest/internal/requirement"
	"github.com/leapstack-labs/pkgmanifest/internal/testutil"
	"github.com/leapstack-labs/pkgmanifest/internal/tree"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectOnly = `
[project]
name = "demo"
version = "0.1.0"
authors = ["Jane Doe <jane@example.com>"]
`

func depsByName(m *core.Manifest) map[string]core.Dependency {
	out := make(map[string]core.Dependency)
	for _, d := range m.Summary().Dependencies() {
		out[d.Name] = d
	}
	return out
}

func TestCompile_ProjectOnly(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()

	m, err := Compile([]byte(projectOnly), WithLogger(logger))
	require.NoError(t, err)

	assert.Empty(t, m.Targets())
	assert.Empty(t, m.Summary().Dependencies())
	assert.Equal(t, "target", m.TargetDir())
	assert.Equal(t, core.PackageID{Name: "demo", Version: "0.1.0"}, m.Summary().PackageID())
	assert.Equal(t, []string{"Jane Doe <jane@example.com>"}, m.Summary().Project().Authors)
	assert.True(t, logs.Contains("manifest has no build targets"))
}

func TestCompile_MissingProject(t *testing.T) {
	docs := map[string]string{
		"empty document": ``,
		"valid other sections": `
[[lib]]
name = "demo"

[dependencies]
foo = "1.0"
`,
		"invalid other sections": `
dependencies = 5

[[bin]]
path = 1
`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			m, err := Compile([]byte(doc))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrMissingSection)
			assert.Equal(t, KindMissingSection, KindOf(err))
			assert.Contains(t, err.Error(), "manifest is invalid")
		})
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	_, err := Compile([]byte("[project\nname = "))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrSyntax)
	var serr *tree.SyntaxError
	assert.True(t, errors.As(err, &serr))
	assert.Contains(t, err.Error(), "not a well-formed document")
}

func TestCompile_UnsupportedFormat(t *testing.T) {
	_, err := Compile([]byte(projectOnly), WithFormat("ini"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, KindUnknown, KindOf(err))

	var merr *Error
	assert.False(t, errors.As(err, &merr))
}

func TestCompile_Dependencies(t *testing.T) {
	doc := projectOnly + `
[dependencies]
foo = "1.0"
bar = { version = "^2.1", registry = "custom" }
`
	m, err := Compile([]byte(doc))
	require.NoError(t, err)

	deps := m.Summary().Dependencies()
	require.Len(t, deps, 2)
	// Sorted by name.
	assert.Equal(t, "bar", deps[0].Name)
	assert.Equal(t, "foo", deps[1].Name)

	foo := depsByName(m)["foo"]
	assert.Equal(t, "1.0", foo.Requirement.String())
	assert.Nil(t, foo.Extra)

	bar := depsByName(m)["bar"]
	assert.Equal(t, "^2.1", bar.Requirement.String())
	assert.Equal(t, map[string]string{"registry": "custom"}, bar.Extra)
	assert.True(t, bar.Requirement.Matches("2.4.0"))
	assert.False(t, bar.Requirement.Matches("3.0.0"))
}

func TestCompile_DetailedSameAsSimple(t *testing.T) {
	simple, err := Compile([]byte(projectOnly + "\n[dependencies]\nfoo = \"1.0\"\n"))
	require.NoError(t, err)
	detailed, err := Compile([]byte(projectOnly + "\n[dependencies]\nfoo = { version = \"1.0\", registry = \"custom\" }\n"))
	require.NoError(t, err)

	assert.Equal(t,
		depsByName(simple)["foo"].Requirement.String(),
		depsByName(detailed)["foo"].Requirement.String())
	assert.Equal(t, "custom", depsByName(detailed)["foo"].Extra["registry"])
}

func TestCompile_DependencyErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
		kind Kind
	}{
		{
			name: "missing version",
			doc:  projectOnly + "\n[dependencies]\nfoo = { registry = \"custom\" }\n",
			want: ErrMissingVersion,
			kind: KindMissingVersion,
		},
		{
			name: "non-string detail",
			doc:  projectOnly + "\n[dependencies]\nfoo = { version = \"1.0\", optional = true }\n",
			want: ErrInvalidDependencySpec,
			kind: KindInvalidDependencySpec,
		},
		{
			// Top-level keys must precede the first table header.
			name: "dependencies not a table",
			doc:  "dependencies = \"foo\"\n" + projectOnly,
			want: ErrInvalidDependenciesSection,
			kind: KindInvalidDependenciesSection,
		},
		{
			name: "unparsable requirement",
			doc:  projectOnly + "\n[dependencies]\nfoo = \"not a version\"\n",
			want: ErrInvalidVersionRequirement,
			kind: KindInvalidVersionRequirement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestCompile_InvalidRequirementNamesDependency(t *testing.T) {
	_, err := Compile([]byte(projectOnly + "\n[dependencies]\ngood = \"1.0\"\nbad = \">>nope\"\n"))
	require.Error(t, err)

	var merr *Error
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "bad", merr.Name)

	var perr *requirement.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad", perr.Name)
}

func TestCompile_UnrecognizedDependencyShapeSkipped(t *testing.T) {
	doc := projectOnly + `
[dependencies]
foo = "1.0"
num = 5
list = ["1.0"]
`
	logger, logs := testutil.NewCaptureLogger()
	m, err := Compile([]byte(doc), WithLogger(logger))
	require.NoError(t, err)

	deps := depsByName(m)
	assert.Len(t, deps, 1)
	assert.Contains(t, deps, "foo")
	assert.True(t, logs.Contains("skipping dependency with unrecognized value"))
}

func TestCompile_StrictRejectsUnrecognizedDependencyShape(t *testing.T) {
	doc := projectOnly + "\n[dependencies]\nnum = 5\n"
	_, err := Compile([]byte(doc), WithStrict())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDependencySpec)
	assert.Contains(t, err.Error(), "an integer")
}

func TestCompile_Targets(t *testing.T) {
	doc := projectOnly + `
[[lib]]
name = "mylib"

[[bin]]
name = "tool"

[[bin]]
name = "other"
path = "cmd/other.rs"
`
	m, err := Compile([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []core.Target{
		core.NewLibTarget("mylib", "src/mylib.rs"),
		core.NewBinTarget("tool", "src/bin/tool.rs"),
		core.NewBinTarget("other", "cmd/other.rs"),
	}, m.Targets())
}

func TestCompile_SourceExt(t *testing.T) {
	doc := projectOnly + "\n[[bin]]\nname = \"a\"\n"
	m, err := Compile([]byte(doc), WithSourceExt(".zig"))
	require.NoError(t, err)
	assert.Equal(t, "src/a.zig", m.Targets()[0].Path)
}

func TestCompile_YAML(t *testing.T) {
	doc := `
project:
  name: demo
  version: 0.1.0
lib:
  - name: demo
bin:
  - name: tool
dependencies:
  foo: "1.0"
  bar:
    version: "2.0"
    git: https://example.com/bar.git
`
	m, err := Compile([]byte(doc), WithFormat(tree.FormatYAML))
	require.NoError(t, err)

	assert.Equal(t, []core.Target{
		core.NewLibTarget("demo", "src/demo.rs"),
		core.NewBinTarget("tool", "src/bin/tool.rs"),
	}, m.Targets())
	assert.Equal(t, "https://example.com/bar.git", depsByName(m)["bar"].Extra["git"])
}

func TestCompile_ConcurrentCallsAreIndependent(t *testing.T) {
	docs := []string{
		projectOnly + "\n[[lib]]\nname = \"a\"\n",
		projectOnly + "\n[[bin]]\nname = \"b\"\n",
		projectOnly + "\n[dependencies]\nc = \"1.0\"\n",
	}

	var wg sync.WaitGroup
	errs := make([]error, 30)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Compile([]byte(docs[i%len(docs)]))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
