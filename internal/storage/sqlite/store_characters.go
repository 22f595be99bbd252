package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/storage"
)

const (
	ratingKindAttribute  = "attribute"
	ratingKindSkill      = "skill"
	ratingKindDiscipline = "discipline"

	traitKindMerit = "merit"
	traitKindFlaw  = "flaw"
)

// PutCharacter stores one character snapshot, replacing any previous
// record for the same chronicle and name.
func (s *Store) PutCharacter(ctx context.Context, snapshot character.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	chronicle := strings.TrimSpace(snapshot.Chronicle)
	name := strings.TrimSpace(snapshot.Name)
	if chronicle == "" {
		return fmt.Errorf("chronicle is required")
	}
	if name == "" {
		return fmt.Errorf("character name is required")
	}

	// Rebuilding through New normalizes clamps and defaults before the
	// row is written.
	cfg := character.New(snapshot).Snapshot()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put character: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO characters (
		   chronicle, name, hunger,
		   willpower_max, willpower_sup, willpower_agg,
		   humanity, stains, blood_potency,
		   predator_key, frenzied, location, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (chronicle, name) DO UPDATE SET
		   hunger = excluded.hunger,
		   willpower_max = excluded.willpower_max,
		   willpower_sup = excluded.willpower_sup,
		   willpower_agg = excluded.willpower_agg,
		   humanity = excluded.humanity,
		   stains = excluded.stains,
		   blood_potency = excluded.blood_potency,
		   predator_key = excluded.predator_key,
		   frenzied = excluded.frenzied,
		   location = excluded.location,
		   updated_at = excluded.updated_at`,
		chronicle, name, *cfg.Hunger,
		cfg.WillpowerMax, cfg.WillpowerSup, cfg.WillpowerAgg,
		*cfg.Humanity, cfg.Stains, *cfg.BloodPotency,
		cfg.PredatorKey, boolToInt(cfg.Frenzied), cfg.Location, toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert character: %w", err)
	}

	for _, table := range []string{"character_ratings", "character_traits", "character_touchstones"} {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE chronicle = ? AND character_name = ?",
			chronicle, name,
		); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	ratings := map[string]map[string]int{
		ratingKindAttribute:  cfg.Attributes,
		ratingKindSkill:      cfg.Skills,
		ratingKindDiscipline: cfg.Disciplines,
	}
	for kind, values := range ratings {
		for key, dots := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO character_ratings (chronicle, character_name, kind, name, dots)
				 VALUES (?, ?, ?, ?, ?)`,
				chronicle, name, kind, key, dots,
			); err != nil {
				return fmt.Errorf("insert %s rating: %w", kind, err)
			}
		}
	}

	traits := map[string][]character.Trait{
		traitKindMerit: cfg.Merits,
		traitKindFlaw:  cfg.Flaws,
	}
	for kind, list := range traits {
		for _, trait := range list {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO character_traits (chronicle, character_name, kind, name, dots, tags)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				chronicle, name, kind, trait.Name, trait.Dots, strings.Join(trait.Tags, ","),
			); err != nil {
				return fmt.Errorf("insert %s: %w", kind, err)
			}
		}
	}

	for _, ts := range cfg.Touchstones {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO character_touchstones (chronicle, character_name, name, description, alive)
			 VALUES (?, ?, ?, ?, ?)`,
			chronicle, name, ts.Name, ts.Description, boolToInt(ts.Alive),
		); err != nil {
			return fmt.Errorf("insert touchstone: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put character: %w", err)
	}
	return nil
}

// GetCharacter loads one character snapshot.
func (s *Store) GetCharacter(ctx context.Context, chronicle, name string) (character.Config, error) {
	if err := ctx.Err(); err != nil {
		return character.Config{}, err
	}
	if s == nil || s.sqlDB == nil {
		return character.Config{}, fmt.Errorf("storage is not configured")
	}

	var (
		cfg      character.Config
		hunger   int
		humanity int
		potency  int
		frenzied int
	)
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT chronicle, name, hunger,
		        willpower_max, willpower_sup, willpower_agg,
		        humanity, stains, blood_potency,
		        predator_key, frenzied, location
		   FROM characters WHERE chronicle = ? AND name = ?`,
		chronicle, name,
	)
	err := row.Scan(&cfg.Chronicle, &cfg.Name, &hunger,
		&cfg.WillpowerMax, &cfg.WillpowerSup, &cfg.WillpowerAgg,
		&humanity, &cfg.Stains, &potency,
		&cfg.PredatorKey, &frenzied, &cfg.Location,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return character.Config{}, storage.ErrNotFound
	}
	if err != nil {
		return character.Config{}, fmt.Errorf("scan character: %w", err)
	}
	cfg.Hunger = &hunger
	cfg.Humanity = &humanity
	cfg.BloodPotency = &potency
	cfg.Frenzied = frenzied != 0

	if err := s.loadRatings(ctx, &cfg); err != nil {
		return character.Config{}, err
	}
	if err := s.loadTraits(ctx, &cfg); err != nil {
		return character.Config{}, err
	}
	if err := s.loadTouchstones(ctx, &cfg); err != nil {
		return character.Config{}, err
	}
	return cfg, nil
}

// ListCharacters returns the character names stored for a chronicle,
// sorted by name.
func (s *Store) ListCharacters(ctx context.Context, chronicle string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT name FROM characters WHERE chronicle = ? ORDER BY name",
		chronicle,
	)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan character name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) loadRatings(ctx context.Context, cfg *character.Config) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT kind, name, dots FROM character_ratings
		  WHERE chronicle = ? AND character_name = ?`,
		cfg.Chronicle, cfg.Name,
	)
	if err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}
	defer rows.Close()

	cfg.Attributes = map[string]int{}
	cfg.Skills = map[string]int{}
	cfg.Disciplines = map[string]int{}
	for rows.Next() {
		var kind, name string
		var dots int
		if err := rows.Scan(&kind, &name, &dots); err != nil {
			return fmt.Errorf("scan rating: %w", err)
		}
		switch kind {
		case ratingKindAttribute:
			cfg.Attributes[name] = dots
		case ratingKindSkill:
			cfg.Skills[name] = dots
		case ratingKindDiscipline:
			cfg.Disciplines[name] = dots
		}
	}
	return rows.Err()
}

func (s *Store) loadTraits(ctx context.Context, cfg *character.Config) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT kind, name, dots, tags FROM character_traits
		  WHERE chronicle = ? AND character_name = ? ORDER BY name`,
		cfg.Chronicle, cfg.Name,
	)
	if err != nil {
		return fmt.Errorf("load traits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, tags string
		var trait character.Trait
		if err := rows.Scan(&kind, &trait.Name, &trait.Dots, &tags); err != nil {
			return fmt.Errorf("scan trait: %w", err)
		}
		if tags != "" {
			trait.Tags = strings.Split(tags, ",")
		}
		switch kind {
		case traitKindMerit:
			cfg.Merits = append(cfg.Merits, trait)
		case traitKindFlaw:
			cfg.Flaws = append(cfg.Flaws, trait)
		}
	}
	return rows.Err()
}

func (s *Store) loadTouchstones(ctx context.Context, cfg *character.Config) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, description, alive FROM character_touchstones
		  WHERE chronicle = ? AND character_name = ? ORDER BY name`,
		cfg.Chronicle, cfg.Name,
	)
	if err != nil {
		return fmt.Errorf("load touchstones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts character.Touchstone
		var alive int
		if err := rows.Scan(&ts.Name, &ts.Description, &alive); err != nil {
			return fmt.Errorf("scan touchstone: %w", err)
		}
		ts.Alive = alive != 0
		cfg.Touchstones = append(cfg.Touchstones, ts)
	}
	return rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
