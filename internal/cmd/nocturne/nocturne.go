// Package nocturne parses server command flags and serves the chronicle
// engine over MCP.
package nocturne

import (
	"context"
	"flag"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/combat"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/frenzy"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
	"github.com/nocturne-rpg/nocturne/internal/mcp/domain"
	"github.com/nocturne-rpg/nocturne/internal/mcp/service"
	platformcmd "github.com/nocturne-rpg/nocturne/internal/platform/cmd"
	"github.com/nocturne-rpg/nocturne/internal/random"
	"github.com/nocturne-rpg/nocturne/internal/storage"
	"github.com/nocturne-rpg/nocturne/internal/storage/sqlite"
	"github.com/nocturne-rpg/nocturne/internal/telemetry"
)

// Config holds server command configuration.
type Config struct {
	DBPath    string `env:"NOCTURNE_DB_PATH"       envDefault:"nocturne.db"`
	Transport string `env:"NOCTURNE_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"NOCTURNE_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Seed      int64  `env:"NOCTURNE_DICE_SEED"     envDefault:"0"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "dice seed for reproducibility (0 = random)")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens storage, wires the engine, and serves MCP until the
// context ends.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceNocturne, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		deps, err := BuildDeps(cfg.Seed, store)
		if err != nil {
			return err
		}

		return service.Run(ctx, service.Config{
			Transport: service.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
			Deps:      deps,
		})
	})
}

// BuildDeps assembles the engine dependencies over a store. A zero seed
// draws a fresh one from crypto/rand.
func BuildDeps(seed int64, store storage.Store) (domain.Deps, error) {
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return domain.Deps{}, err
		}
		seed = s
	}

	zones, err := zone.DefaultRegistry()
	if err != nil {
		return domain.Deps{}, err
	}
	weapons, err := combat.DefaultArsenal()
	if err != nil {
		return domain.Deps{}, err
	}

	return domain.Deps{
		Roller:     dice.NewRoller(seed),
		Store:      store,
		Encounters: combat.NewManager(),
		Frenzies:   frenzy.NewLedger(),
		Zones:      zones,
		Weapons:    weapons,
		Telemetry:  telemetry.New(store),
	}, nil
}
