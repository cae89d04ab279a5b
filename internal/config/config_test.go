package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults not applied: %+v", cfg.Server)
	}
	if cfg.Interpreter.ActionThreshold != DefaultActionThreshold {
		t.Errorf("action threshold = %f, want %f", cfg.Interpreter.ActionThreshold, DefaultActionThreshold)
	}
	if cfg.Interpreter.KnowledgeThreshold != DefaultKnowledgeThreshold {
		t.Errorf("knowledge threshold = %f, want %f", cfg.Interpreter.KnowledgeThreshold, DefaultKnowledgeThreshold)
	}
	if cfg.Knowledge.Path == "" || cfg.Storage.DatabasePath == "" {
		t.Error("path defaults not applied")
	}
}

func TestLoadExpandsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  database_path: ./data/shirts.db
knowledge:
  path: ./knowledge.yaml
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.DatabasePath != filepath.Join(dir, "data/shirts.db") {
		t.Errorf("database path not expanded: %s", cfg.Storage.DatabasePath)
	}
	if cfg.Knowledge.Path != filepath.Join(dir, "knowledge.yaml") {
		t.Errorf("knowledge path not expanded: %s", cfg.Knowledge.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadOverridesThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
interpreter:
  action_threshold: 0.5
  knowledge_threshold: 0.7
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interpreter.ActionThreshold != 0.5 {
		t.Errorf("action threshold = %f, want 0.5", cfg.Interpreter.ActionThreshold)
	}
	if cfg.Interpreter.KnowledgeThreshold != 0.7 {
		t.Errorf("knowledge threshold = %f, want 0.7", cfg.Interpreter.KnowledgeThreshold)
	}
}
