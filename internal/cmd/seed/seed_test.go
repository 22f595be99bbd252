package seed

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nocturne-rpg/nocturne/internal/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "nocturne.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Chronicle != DefaultChronicle {
		t.Fatalf("expected default chronicle, got %q", cfg.Chronicle)
	}
	if cfg.List || cfg.Verbose {
		t.Fatal("expected list and verbose to default off")
	}
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Chronicle: "test", List: true}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run list: %v", err)
	}
	if !strings.Contains(out.String(), "Elena Voss") {
		t.Fatalf("list output missing fixtures: %s", out.String())
	}
}

func TestApplyWritesFixtures(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "nocturne.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	cfg := Config{DBPath: "test.db", Chronicle: "test", Verbose: true}
	if err := Apply(ctx, store, cfg, &out); err != nil {
		t.Fatalf("apply fixtures: %v", err)
	}

	names, err := store.ListCharacters(ctx, "test")
	if err != nil {
		t.Fatalf("list characters: %v", err)
	}
	if len(names) != len(Coterie("test")) {
		t.Fatalf("stored %d characters, want %d", len(names), len(Coterie("test")))
	}

	got, err := store.GetCharacter(ctx, "test", "Viktor Kessler")
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if got.PredatorKey != "alleycat" || got.Location != "old_harbor" {
		t.Fatalf("fixture round trip = %q in %q", got.PredatorKey, got.Location)
	}

	city, err := store.GetDirectorState(ctx, "test")
	if err != nil {
		t.Fatalf("get director state: %v", err)
	}
	if city.Awareness == nil || *city.Awareness != 2 || city.Pressures["masquerade"] != 4 {
		t.Fatalf("city baseline = %+v", city)
	}

	if !strings.Contains(out.String(), "seeded chronicle") {
		t.Fatalf("output missing summary: %s", out.String())
	}
}
