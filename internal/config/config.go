// Package config loads apicompat project settings from .apicompat.yaml in
// the working directory.
//
//	specRoot: api-specs          # directory holding <version>/current/openapi.yaml
//	versions: [v1, v2, v3, v4]   # release-ordered version chain
//
// The file is optional: Load returns (nil, nil) when it is absent, and every
// accessor is safe on a nil receiver, falling back to the defaults above.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"apicompat/internal/chain"
)

// FileName is the settings file looked up in the working directory.
const FileName = ".apicompat.yaml"

// DefaultSpecRoot is the version-directory root used when no settings file
// overrides it.
const DefaultSpecRoot = "api-specs"

// Settings holds apicompat configuration.
type Settings struct {
	SpecRoot string   `yaml:"specRoot"`
	Versions []string `yaml:"versions"`
}

// Path returns the settings file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads .apicompat.yaml from dir. Returns nil (not an error) if the
// file does not exist.
func Load(dir string) (*Settings, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the settings to .apicompat.yaml in dir. Errors if the file
// already exists.
func (s *Settings) Save(dir string) error {
	path := Path(dir)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Root returns the configured spec root directory. Safe on a nil receiver.
func (s *Settings) Root() string {
	if s == nil || s.SpecRoot == "" {
		return DefaultSpecRoot
	}
	return s.SpecRoot
}

// Chain returns the configured version chain. Safe on a nil receiver.
func (s *Settings) Chain() []string {
	if s == nil || len(s.Versions) == 0 {
		return chain.DefaultVersions
	}
	return s.Versions
}
