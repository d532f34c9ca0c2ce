package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// searchPathConfig is the on-disk shape of a YAML search-path config file:
//
//	search_path:
//	  - /opt/yasdl/vendor
//	  - /opt/yasdl/shared
//	driver: postgres
type searchPathConfig struct {
	SearchPath []string `yaml:"search_path"`
	Driver     string   `yaml:"driver"`
}

// LoadEnvSearchPath reads a YAML search-path config file named by the
// environment variable envVar (spec §6: "search-path list (from environment
// or configuration file)") and returns an Option applying it via
// WithSearchPath. If envVar is unset, LoadEnvSearchPath returns a no-op
// Option and no error — an unset variable is not a configuration error.
//
// The config file's optional driver field is returned alongside the Option
// so a caller can thread it into its own driver-selection logic; this
// package has no driver concept of its own.
func LoadEnvSearchPath(envVar string) (Option, string, error) {
	path := os.Getenv(envVar)
	if path == "" {
		return func(*config) {}, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("load: read search-path config %q: %w", path, err)
	}

	var cfg searchPathConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("load: parse search-path config %q: %w", path, err)
	}

	return WithSearchPath(cfg.SearchPath...), cfg.Driver, nil
}
