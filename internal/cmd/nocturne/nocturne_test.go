package nocturne

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/nocturne-rpg/nocturne/internal/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("nocturne", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "nocturne.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Seed != 0 {
		t.Fatalf("expected default seed 0, got %d", cfg.Seed)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("nocturne", flag.ContinueOnError)
	args := []string{"-db", "chronicle.db", "-transport", "http", "-http-addr", "0.0.0.0:9000", "-seed", "42"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "chronicle.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Seed)
	}
}

func TestBuildDeps(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "nocturne.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	deps, err := BuildDeps(0, store)
	if err != nil {
		t.Fatalf("build deps: %v", err)
	}
	if deps.Roller == nil || deps.Encounters == nil || deps.Frenzies == nil {
		t.Fatal("engine dependencies are missing")
	}
	if deps.Zones == nil || deps.Weapons == nil || deps.Telemetry == nil {
		t.Fatal("catalog dependencies are missing")
	}
	if deps.Store != store {
		t.Fatal("store was not wired through")
	}
}
