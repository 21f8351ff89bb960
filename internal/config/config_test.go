package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lambdalink.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("unexpected default address: %q", cfg.Server.Address)
	}
	if cfg.Sessions.Driver != "memory" || cfg.History.Driver != "memory" || cfg.Queue.Driver != "memory" {
		t.Fatalf("unexpected default drivers: %+v", cfg)
	}
	if cfg.Queue.Worker != 2 || cfg.History.Retries != 3 {
		t.Fatalf("unexpected default counts: %+v", cfg)
	}
}

func TestLoadResolvesVocabularyPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lambdalink.json")
	if err := os.WriteFile(path, []byte(`{"vocabulary":{"path":"vocabulary.yaml"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Vocabulary.Path != filepath.Join(dir, "vocabulary.yaml") {
		t.Fatalf("relative vocabulary path should resolve against config dir: %q", cfg.Vocabulary.Path)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
