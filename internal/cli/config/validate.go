package config

import (
	"fmt"
	"strings"
)

var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("manifest is required")
	}

	for _, o := range validOutputs {
		if c.OutputFormat == o {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (use %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
}
