// Package config holds run configuration and the optional .gitpub.yaml
// overlay. Flags override the file, the file overrides defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory.
const DefaultConfigFile = ".gitpub.yaml"

// Config holds the settings a run starts from before flag overrides.
type Config struct {
	// Contact is the attribution contact stamped into README support
	// sections.
	Contact string

	// Branch is the branch pushed to on every remote.
	Branch string

	// MaxDepth bounds the scan. Default: 3.
	MaxDepth int

	// Private creates private repositories instead of public ones.
	Private bool

	// Parallel is the publish worker count. Default: 1 (sequential).
	Parallel int

	// TaggedOnly restricts the scan to tagged projects.
	TaggedOnly bool
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Contact:  "gankstapony@hotmail.com",
		Branch:   "main",
		MaxDepth: 3,
		Parallel: 1,
	}
}

// fileConfig is the YAML shape of .gitpub.yaml. Absent fields leave the
// defaults untouched.
type fileConfig struct {
	Contact    string `yaml:"contact"`
	Branch     string `yaml:"branch"`
	MaxDepth   int    `yaml:"max_depth"`
	Private    bool   `yaml:"private"`
	Parallel   int    `yaml:"parallel"`
	TaggedOnly bool   `yaml:"tagged_only"`
}

// Load returns the defaults overlaid with path's contents. A missing file
// is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if fc.Contact != "" {
		cfg.Contact = fc.Contact
	}
	if fc.Branch != "" {
		cfg.Branch = fc.Branch
	}
	if fc.MaxDepth > 0 {
		cfg.MaxDepth = fc.MaxDepth
	}
	if fc.Parallel > 0 {
		cfg.Parallel = fc.Parallel
	}
	if fc.Private {
		cfg.Private = true
	}
	if fc.TaggedOnly {
		cfg.TaggedOnly = true
	}
	return cfg, nil
}
