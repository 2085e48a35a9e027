// Package core defines the shared language of pkgmanifest.
//
// This package contains the values a compiled manifest is made of:
//   - Package identity (Project, PackageID)
//   - Dependency declarations with parsed requirements (Dependency, Requirement)
//   - Build targets (Target, TargetKind)
//   - The compiled result (Summary, Manifest)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// Decoders, parsers and the CLI depend on core, not the reverse.
package core
