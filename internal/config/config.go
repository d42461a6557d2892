// Package config loads the optional nodesweep JSON configuration file.
//
// The file only tunes the engine (worker counts, skip lists, progress cadence,
// delete strictness); nothing is ever written back.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumipallolabs/nodesweep/internal/scanner"
)

// ErrInvalid is returned when a config value is out of range
var ErrInvalid = errors.New("invalid config")

// Config mirrors the JSON config file
type Config struct {
	Workers          int      `json:"workers"`
	SizeWorkers      int      `json:"size_workers"`
	ProgressInterval string   `json:"progress_interval"`
	MaxDepth         int      `json:"max_depth"`
	Skip             []string `json:"skip"`
	SkipPaths        []string `json:"skip_paths"`
	StrictDelete     bool     `json:"strict_delete"`

	interval time.Duration
}

// ResolvePath returns the config file to load, if any
func ResolvePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	for _, candidate := range defaultPaths() {
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Load reads and validates the config at path
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return Normalize(cfg)
}

// LoadOrDefault loads the resolved config file, or returns defaults when none exists
func LoadOrDefault(explicit string) (Config, error) {
	path, ok := ResolvePath(explicit)
	if !ok {
		return Normalize(Config{})
	}
	return Load(path)
}

// Normalize validates cfg and fills derived fields
func Normalize(cfg Config) (Config, error) {
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("%w: workers must be >= 0", ErrInvalid)
	}
	if cfg.SizeWorkers < 0 {
		return Config{}, fmt.Errorf("%w: size_workers must be >= 0", ErrInvalid)
	}
	if cfg.MaxDepth < 0 {
		return Config{}, fmt.Errorf("%w: max_depth must be >= 0", ErrInvalid)
	}

	cfg.interval = scanner.DefaultProgressInterval
	if cfg.ProgressInterval != "" {
		d, err := time.ParseDuration(cfg.ProgressInterval)
		if err != nil {
			return Config{}, fmt.Errorf("%w: progress_interval: %v", ErrInvalid, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("%w: progress_interval must be positive", ErrInvalid)
		}
		cfg.interval = d
	}
	return cfg, nil
}

// Interval returns the parsed progress interval
func (c Config) Interval() time.Duration {
	if c.interval <= 0 {
		return scanner.DefaultProgressInterval
	}
	return c.interval
}

// SetInterval overrides the progress interval
func (c *Config) SetInterval(d time.Duration) {
	c.interval = d
	c.ProgressInterval = d.String()
}

// ScanOptions converts the config into scanner options
func (c Config) ScanOptions(includeSizes bool) scanner.Options {
	return scanner.Options{
		Workers:          c.Workers,
		SizeWorkers:      c.SizeWorkers,
		IncludeSizes:     includeSizes,
		ProgressInterval: c.Interval(),
		MaxDepth:         c.MaxDepth,
		SkipNames:        c.Skip,
		SkipPaths:        c.SkipPaths,
	}
}

func defaultPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "nodesweep", "config.json"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "nodesweep", "config.json"))
	}
	return paths
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
