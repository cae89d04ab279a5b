// Package config provides configuration loading and structs for the tansu assistant.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug       bool              `yaml:"debug"`
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Knowledge   KnowledgeConfig   `yaml:"knowledge"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the database, search index, and images.
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	BleveIndexPath string `yaml:"bleve_index_path"`
	ImagesDir      string `yaml:"images_dir"`
}

// KnowledgeConfig holds the knowledge source location.
type KnowledgeConfig struct {
	Path string `yaml:"path"`
	// WatchReload enables reloading the knowledge index when the source
	// file changes (server mode only).
	WatchReload bool `yaml:"watch_reload"`
}

// InterpreterConfig holds the interpreter's tunable thresholds.
type InterpreterConfig struct {
	// ActionThreshold is the minimum (inclusive) classification confidence
	// for dispatching a command instead of falling back to knowledge lookup.
	ActionThreshold float64 `yaml:"action_threshold"`
	// KnowledgeThreshold is the minimum (inclusive) similarity for a
	// knowledge entry to answer a low-confidence message.
	KnowledgeThreshold float64 `yaml:"knowledge_threshold"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	cfg.Storage.ImagesDir = expandPath(cfg.Storage.ImagesDir, configDir)
	cfg.Knowledge.Path = expandPath(cfg.Knowledge.Path, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
