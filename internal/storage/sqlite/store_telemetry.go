package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/nocturne-rpg/nocturne/internal/storage"
)

// AppendTelemetry records one action event.
func (s *Store) AppendTelemetry(ctx context.Context, event storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.Chronicle) == "" {
		return fmt.Errorf("chronicle is required")
	}
	if strings.TrimSpace(event.Action) == "" {
		return fmt.Errorf("action is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO telemetry_events (chronicle, actor, action, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		event.Chronicle, event.Actor, event.Action, event.Detail, toMillis(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert telemetry event: %w", err)
	}
	return nil
}

// ListTelemetry returns the most recent events for a chronicle, newest
// first. A non-positive limit defaults to 50.
func (s *Store) ListTelemetry(ctx context.Context, chronicle string, limit int) ([]storage.TelemetryEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT chronicle, actor, action, detail, created_at
		   FROM telemetry_events
		  WHERE chronicle = ?
		  ORDER BY id DESC LIMIT ?`,
		chronicle, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	defer rows.Close()

	var events []storage.TelemetryEvent
	for rows.Next() {
		var event storage.TelemetryEvent
		var createdAt int64
		if err := rows.Scan(&event.Chronicle, &event.Actor, &event.Action, &event.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan telemetry event: %w", err)
		}
		event.CreatedAt = fromMillis(createdAt)
		events = append(events, event)
	}
	return events, rows.Err()
}
