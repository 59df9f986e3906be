package warden

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wardenbot/warden/pkg/adapters/fs"
	"gopkg.in/yaml.v3"
)

// Config holds the file locations and tunables for the service.
type Config struct {
	// NotesPath is the JSON notes document. Its sibling .lock file
	// coordinates exclusive access across processes.
	NotesPath string `yaml:"notes_path"`

	// UsersPath and CatalogPath are the scraped dataset documents the
	// profile snapshot is rebuilt from on every query.
	UsersPath   string `yaml:"users_path"`
	CatalogPath string `yaml:"catalog_path"`

	// WhitelistPath maps caller ids to the display names recorded as note
	// creators. Optional; a missing file means no attributions.
	WhitelistPath string `yaml:"whitelist_path"`

	// LockTimeout bounds the wait for the note store lock.
	LockTimeout Duration `yaml:"lock_timeout"`
}

// DefaultConfig returns the stock layout under ./data.
func DefaultConfig() Config {
	return Config{
		NotesPath:     filepath.Join("data", "notes.json"),
		UsersPath:     filepath.Join("data", "data.json"),
		CatalogPath:   filepath.Join("data", "itemdetails.json"),
		WhitelistPath: filepath.Join("data", "whitelist.json"),
		LockTimeout:   Duration{fs.DefaultLockTimeout},
	}
}

// LoadConfig overlays values from a YAML file onto the defaults.
// An empty path returns the defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Duration lets YAML specify intervals either as strings like "5s" or as
// integer nanoseconds.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = parsed
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or integer nanoseconds")
	}
	d.Duration = time.Duration(n)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}
