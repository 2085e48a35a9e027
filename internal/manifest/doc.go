// Package manifest compiles package manifests into core.Manifest values.
//
// A manifest declares a project, its build targets and its dependencies:
//
//	[project]
//	name = "demo"
//	version = "0.1.0"
//
//	[[lib]]
//	name = "demo"
//
//	[[bin]]
//	name = "demo-cli"
//	path = "cmd/cli.rs"
//
//	[dependencies]
//	log = "^0.4"
//	serde = { version = "1.0", registry = "internal" }
//
// # Compilation
//
// Compile is a pure function from bytes to a manifest. It runs, in order:
//
//  1. the tree decoder (TOML or YAML) producing a generic tree
//  2. the schema decoder extracting `project`, `lib` and `bin`
//  3. the dependency resolver classifying each `dependencies` entry
//  4. the requirement parser for every dependency
//  5. the target normalizer inferring default source paths
//
// Compilation is all-or-nothing: the first failure aborts it and no partial
// manifest is returned.
//
// # Target paths
//
// Targets without an explicit `path` get `src/<name>.<ext>`. When a manifest
// declares both a library and binaries, binaries default to
// `src/bin/<name>.<ext>` instead so they do not collide with the library tree.
// Only the first `lib` entry is used.
//
// # Error Handling
//
// Every failure in the manifest itself is an *Error. An unknown WithFormat
// value is a caller mistake and returns ErrUnsupportedFormat unwrapped, with
// KindOf reporting KindUnknown. errors.Is works with the kind sentinels:
//   - ErrSyntax: the document is not well-formed
//   - ErrMissingSection: the `project` section is absent
//   - ErrSchemaMismatch: a section does not have the expected shape
//   - ErrInvalidDependenciesSection: `dependencies` is not a table
//   - ErrInvalidDependencySpec: a detailed dependency has a non-string value
//   - ErrMissingVersion: a detailed dependency has no `version`
//   - ErrInvalidVersionRequirement: a requirement could not be parsed
//
// By default malformed `lib`/`bin` sections are treated as absent and
// dependency values that are neither strings nor tables are skipped.
// WithStrict turns both into errors.
package manifest
