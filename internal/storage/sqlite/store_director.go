package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/storage"
)

const (
	counterKindPressure = "pressure"
	counterKindTheme    = "theme"
)

// PutDirectorState stores one city pressure snapshot, replacing any
// previous record for the chronicle.
func (s *Store) PutDirectorState(ctx context.Context, snapshot director.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	chronicle := strings.TrimSpace(snapshot.Chronicle)
	if chronicle == "" {
		return fmt.Errorf("chronicle is required")
	}

	cfg := director.New(snapshot).Snapshot()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put director state: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO director_states (chronicle, awareness, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (chronicle) DO UPDATE SET
		   awareness = excluded.awareness,
		   updated_at = excluded.updated_at`,
		chronicle, *cfg.Awareness, toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert director state: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM director_counters WHERE chronicle = ?", chronicle,
	); err != nil {
		return fmt.Errorf("clear director counters: %w", err)
	}

	counters := map[string]map[string]int{
		counterKindPressure: cfg.Pressures,
		counterKindTheme:    cfg.Themes,
	}
	for kind, values := range counters {
		for key, value := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO director_counters (chronicle, kind, key, value)
				 VALUES (?, ?, ?, ?)`,
				chronicle, kind, key, value,
			); err != nil {
				return fmt.Errorf("insert %s counter: %w", kind, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put director state: %w", err)
	}
	return nil
}

// GetDirectorState loads one city pressure snapshot.
func (s *Store) GetDirectorState(ctx context.Context, chronicle string) (director.Config, error) {
	if err := ctx.Err(); err != nil {
		return director.Config{}, err
	}
	if s == nil || s.sqlDB == nil {
		return director.Config{}, fmt.Errorf("storage is not configured")
	}

	var awareness int
	cfg := director.Config{
		Pressures: map[string]int{},
		Themes:    map[string]int{},
	}
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT chronicle, awareness FROM director_states WHERE chronicle = ?",
		chronicle,
	)
	err := row.Scan(&cfg.Chronicle, &awareness)
	if errors.Is(err, sql.ErrNoRows) {
		return director.Config{}, storage.ErrNotFound
	}
	if err != nil {
		return director.Config{}, fmt.Errorf("scan director state: %w", err)
	}
	cfg.Awareness = &awareness

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT kind, key, value FROM director_counters WHERE chronicle = ?",
		chronicle,
	)
	if err != nil {
		return director.Config{}, fmt.Errorf("load director counters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, key string
		var value int
		if err := rows.Scan(&kind, &key, &value); err != nil {
			return director.Config{}, fmt.Errorf("scan director counter: %w", err)
		}
		switch kind {
		case counterKindPressure:
			cfg.Pressures[key] = value
		case counterKindTheme:
			cfg.Themes[key] = value
		}
	}
	return cfg, rows.Err()
}
