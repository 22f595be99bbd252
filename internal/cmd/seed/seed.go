// Package seed populates a chronicle database with a demo coterie and
// a baseline city state.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	platformcmd "github.com/nocturne-rpg/nocturne/internal/platform/cmd"
	"github.com/nocturne-rpg/nocturne/internal/storage"
	"github.com/nocturne-rpg/nocturne/internal/storage/sqlite"
)

// DefaultChronicle names the chronicle the fixtures belong to.
const DefaultChronicle = "midnight_harbor"

// Config holds seed command configuration.
type Config struct {
	DBPath    string `env:"NOCTURNE_DB_PATH" envDefault:"nocturne.db"`
	Chronicle string `env:"NOCTURNE_SEED_CHRONICLE" envDefault:"midnight_harbor"`
	List      bool
	Verbose   bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.Chronicle, "chronicle", cfg.Chronicle, "chronicle to seed")
	fs.BoolVar(&cfg.List, "list", false, "list fixture characters without writing")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func intPtr(v int) *int { return &v }

// Coterie returns the fixture characters for a chronicle.
func Coterie(chronicle string) []character.Config {
	return []character.Config{
		{
			Chronicle:    chronicle,
			Name:         "Elena Voss",
			Hunger:       intPtr(2),
			WillpowerMax: 6,
			Humanity:     intPtr(7),
			BloodPotency: intPtr(2),
			PredatorKey:  "siren",
			Location:     "downtown_rack",
			Attributes: map[string]int{
				"strength": 2, "dexterity": 3, "stamina": 2,
				"charisma": 4, "manipulation": 3, "composure": 3,
				"intelligence": 2, "wits": 3, "resolve": 2,
			},
			Skills: map[string]int{
				"persuasion": 3, "subterfuge": 2, "insight": 2,
				"athletics": 1, "brawl": 1, "etiquette": 3,
			},
			Disciplines: map[string]int{"presence": 2, "celerity": 1},
			Merits: []character.Trait{
				{Name: "Iron Will", Dots: 2, Tags: []string{character.TagFrenzyResistBonus}},
			},
			Touchstones: []character.Touchstone{
				{Name: "Marta Voss", Description: "Estranged sister tending the family bar", Alive: true},
			},
		},
		{
			Chronicle:    chronicle,
			Name:         "Viktor Kessler",
			Hunger:       intPtr(3),
			WillpowerMax: 5,
			Humanity:     intPtr(5),
			BloodPotency: intPtr(3),
			PredatorKey:  "alleycat",
			Location:     "old_harbor",
			Attributes: map[string]int{
				"strength": 4, "dexterity": 3, "stamina": 3,
				"charisma": 2, "manipulation": 2, "composure": 2,
				"intelligence": 2, "wits": 3, "resolve": 3,
			},
			Skills: map[string]int{
				"brawl": 3, "intimidation": 3, "athletics": 2,
				"streetwise": 3, "firearms": 2, "larceny": 1,
			},
			Disciplines: map[string]int{"potence": 2, "fortitude": 1},
			Flaws: []character.Trait{
				{Name: "Short Fuse", Dots: 1, Tags: []string{character.TagFrenzyProne}},
			},
			Touchstones: []character.Touchstone{
				{Name: "Father Reyes", Description: "Priest who still hears his confessions", Alive: true},
			},
		},
		{
			Chronicle:    chronicle,
			Name:         "Dr. Imogen Hale",
			Hunger:       intPtr(1),
			WillpowerMax: 7,
			Humanity:     intPtr(8),
			BloodPotency: intPtr(1),
			PredatorKey:  "bagger",
			Location:     "mercy_general",
			Attributes: map[string]int{
				"strength": 1, "dexterity": 2, "stamina": 2,
				"charisma": 2, "manipulation": 3, "composure": 4,
				"intelligence": 4, "wits": 3, "resolve": 3,
			},
			Skills: map[string]int{
				"medicine": 4, "science": 3, "larceny": 2,
				"insight": 2, "technology": 2, "subterfuge": 1,
			},
			Disciplines: map[string]int{"obfuscate": 1, "auspex": 2},
			Merits: []character.Trait{
				{Name: "Unflappable", Dots: 1, Tags: []string{character.TagRemorseBonus}},
			},
			Touchstones: []character.Touchstone{
				{Name: "Nurse Okafor", Description: "Night-shift charge nurse who covers her absences", Alive: true},
			},
		},
	}
}

// CityBaseline returns the fixture director state for a chronicle.
func CityBaseline(chronicle string) director.Config {
	return director.Config{
		Chronicle: chronicle,
		Awareness: intPtr(2),
		Pressures: map[string]int{
			director.PressureMasquerade: 4,
			director.PressureViolence:   3,
			director.PressureOccult:     1,
		},
		Themes: map[string]int{
			director.ThemeMystery:    6,
			director.ThemeMasquerade: 7,
		},
	}
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	coterie := Coterie(cfg.Chronicle)
	if cfg.List {
		fmt.Fprintf(out, "Fixtures for chronicle %q:\n", cfg.Chronicle)
		for _, c := range coterie {
			fmt.Fprintf(out, "  %s (%s, %s)\n", c.Name, c.PredatorKey, c.Location)
		}
		return nil
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return Apply(ctx, store, cfg, out)
}

// Apply writes the fixtures through a store.
func Apply(ctx context.Context, store storage.Store, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	for _, c := range Coterie(cfg.Chronicle) {
		if err := store.PutCharacter(ctx, c); err != nil {
			return fmt.Errorf("seed character %s: %w", c.Name, err)
		}
		if cfg.Verbose {
			fmt.Fprintf(out, "seeded character %s\n", c.Name)
		}
	}

	if err := store.PutDirectorState(ctx, CityBaseline(cfg.Chronicle)); err != nil {
		return fmt.Errorf("seed city state: %w", err)
	}

	fmt.Fprintf(out, "seeded chronicle %q into %s\n", cfg.Chronicle, cfg.DBPath)
	return nil
}
