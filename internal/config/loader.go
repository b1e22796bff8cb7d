package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".rightmove.yml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the YAML configuration file. Every field is optional;
// set fields override the built-in defaults. The primary use case is
// repairing selectors after a site markup change without rebuilding.
type File struct {
	// Selectors overrides individual CSS selectors.
	Selectors Selectors `yaml:"selectors,omitempty"`

	// PageSize overrides the listings-per-page constant.
	PageSize int `yaml:"pageSize,omitempty"`

	// MaxPageCount overrides the result page cap.
	MaxPageCount int `yaml:"maxPageCount,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// RequestDelay overrides the minimum interval between requests.
	RequestDelay time.Duration `yaml:"requestDelay,omitempty"`

	// FloorplanWorkers overrides the floorplan worker pool size.
	FloorplanWorkers int `yaml:"floorplanWorkers,omitempty"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers decide
// whether that is fatal based on whether the path was explicitly requested.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .rightmove.yml in the current directory
//  3. Look for .rightmove.yml in the XDG config directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Apply overlays the file's set fields onto the config.
func (f *File) Apply(cfg *Config) {
	cfg.Selectors.merge(f.Selectors)

	if f.PageSize > 0 {
		cfg.PageSize = f.PageSize
	}
	if f.MaxPageCount > 0 {
		cfg.MaxPageCount = f.MaxPageCount
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.RequestDelay > 0 {
		cfg.RequestDelay = f.RequestDelay
	}
	if f.FloorplanWorkers > 0 {
		cfg.FloorplanWorkers = f.FloorplanWorkers
	}
}
