// Package storage defines persistence contracts for chronicle state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// TelemetryEvent stores one engine action for later review.
type TelemetryEvent struct {
	Chronicle string
	Actor     string
	Action    string
	Detail    string
	CreatedAt time.Time
}

// CharacterStore persists character resource snapshots keyed by
// chronicle and name.
type CharacterStore interface {
	PutCharacter(ctx context.Context, snapshot character.Config) error
	GetCharacter(ctx context.Context, chronicle, name string) (character.Config, error)
	ListCharacters(ctx context.Context, chronicle string) ([]string, error)
}

// DirectorStore persists city pressure snapshots keyed by chronicle.
type DirectorStore interface {
	PutDirectorState(ctx context.Context, snapshot director.Config) error
	GetDirectorState(ctx context.Context, chronicle string) (director.Config, error)
}

// TelemetryStore appends action telemetry records.
type TelemetryStore interface {
	AppendTelemetry(ctx context.Context, event TelemetryEvent) error
	ListTelemetry(ctx context.Context, chronicle string, limit int) ([]TelemetryEvent, error)
}

// Store is a composite interface for chronicle storage concerns.
type Store interface {
	CharacterStore
	DirectorStore
	TelemetryStore
	Close() error
}
