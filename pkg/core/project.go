package core

import "fmt"

// Project holds the decoded `project` section of a manifest.
type Project struct {
	Name        string   `koanf:"name"`
	Version     string   `koanf:"version"`
	Authors     []string `koanf:"authors"`
	Description string   `koanf:"description"`
}

// Validate checks the fields every project must declare.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Version == "" {
		return fmt.Errorf("project version is required")
	}
	return nil
}

// PackageID returns the identity of the package described by the project.
func (p *Project) PackageID() PackageID {
	return PackageID{Name: p.Name, Version: p.Version}
}

// PackageID uniquely identifies a package by name and version.
type PackageID struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (id PackageID) String() string {
	return fmt.Sprintf("%s v%s", id.Name, id.Version)
}
