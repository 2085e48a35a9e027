package output

// CheckResult is the JSON shape of one checked manifest.
type CheckResult struct {
	File      string `json:"file"`
	OK        bool   `json:"ok"`
	PackageID string `json:"package_id,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CheckOutput is the JSON shape of the check command.
type CheckOutput struct {
	Results []CheckResult `json:"results"`
	Failed  int           `json:"failed"`
}

// DependencyInfo describes one resolved dependency.
type DependencyInfo struct {
	Name        string            `json:"name"`
	Requirement string            `json:"requirement"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// TargetInfo describes one build target.
type TargetInfo struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// ManifestOutput is the JSON shape of the show command.
type ManifestOutput struct {
	File         string           `json:"file"`
	PackageID    string           `json:"package_id"`
	Name         string           `json:"name"`
	Version      string           `json:"version"`
	Authors      []string         `json:"authors,omitempty"`
	Description  string           `json:"description,omitempty"`
	TargetDir    string           `json:"target_dir"`
	Dependencies []DependencyInfo `json:"dependencies"`
	Targets      []TargetInfo     `json:"targets"`
}
