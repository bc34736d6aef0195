// Package config loads stylevars options from a project directory.
//
// Options come from .config/stylevars.{yaml,yml} or, failing that, from the
// styleVariablesLoader field of package.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// packageJSONField is the package.json key holding loader options
const packageJSONField = "styleVariablesLoader"

// Config holds loader options
type Config struct {
	// VariablesFiles are paths or glob patterns, relative to the project root,
	// of the files to inject. Order is injection order.
	VariablesFiles []string `yaml:"variablesFiles" json:"variablesFiles"`
	// ImportStatements are prepended to style blocks of the dialect they import
	ImportStatements []string `yaml:"importStatements" json:"importStatements"`
	// CacheVersion pins the convertor cache version
	CacheVersion string `yaml:"cacheVersion" json:"cacheVersion"`
}

// Load reads the configuration for rootDir. It returns nil, nil when the
// project has none.
func Load(rootDir string) (*Config, error) {
	if rootDir == "" {
		return nil, nil
	}

	for _, name := range []string{"stylevars.yaml", "stylevars.yml"} {
		cfg, err := readYAML(filepath.Join(rootDir, ".config", name))
		if err != nil || cfg != nil {
			return cfg, err
		}
	}

	return readPackageJSON(filepath.Join(rootDir, "package.json"))
}

func readYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: project configuration chosen by the user
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

func readPackageJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: project package.json
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	// Parse as JSONC (allows comments)
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	raw, ok := pkg[packageJSONField]
	if !ok {
		return nil, nil
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%s must be an object with string arrays: %w", packageJSONField, err)
	}
	return &cfg, nil
}
