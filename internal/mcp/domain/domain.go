// Package domain defines the MCP tool and resource surface for the
// chronicle engine. Each operation is a Tool() schema plus a Handler()
// closure over the shared Deps; handlers validate input, run the
// engine in process, persist mutated snapshots, and emit telemetry.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/combat"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/frenzy"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
	apperrors "github.com/nocturne-rpg/nocturne/internal/platform/errors"
	"github.com/nocturne-rpg/nocturne/internal/storage"
	"github.com/nocturne-rpg/nocturne/internal/telemetry"
)

// Deps carries the engine collaborators shared by every handler.
type Deps struct {
	Roller     dice.Roller
	Store      storage.Store
	Encounters *combat.Manager
	Frenzies   *frenzy.Ledger
	Zones      *zone.Registry
	Weapons    *combat.Arsenal
	Telemetry  *telemetry.Emitter
}

func (d Deps) validateCharacterKey(chronicle, name string) error {
	if strings.TrimSpace(chronicle) == "" {
		return apperrors.New(apperrors.CodeCharacterEmptyChronicle, "chronicle is required")
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	}
	return nil
}

func (d Deps) loadCharacter(ctx context.Context, chronicle, name string) (*character.Character, error) {
	if err := d.validateCharacterKey(chronicle, name); err != nil {
		return nil, err
	}
	cfg, err := d.Store.GetCharacter(ctx, chronicle, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.WithMetadata(apperrors.CodeCharacterNotFound,
			fmt.Sprintf("character %q not found in chronicle %q", name, chronicle),
			map[string]string{"name": name, "chronicle": chronicle})
	}
	if err != nil {
		return nil, fmt.Errorf("load character %s: %w", name, err)
	}
	return character.New(cfg), nil
}

func (d Deps) saveCharacter(ctx context.Context, c *character.Character) error {
	if err := d.Store.PutCharacter(ctx, c.Snapshot()); err != nil {
		return fmt.Errorf("save character %s: %w", c.Name(), err)
	}
	return nil
}

// loadDirector returns the chronicle's city state, starting a fresh
// one at defaults when nothing has been persisted yet.
func (d Deps) loadDirector(ctx context.Context, chronicle string) (*director.State, error) {
	cfg, err := d.Store.GetDirectorState(ctx, chronicle)
	if errors.Is(err, storage.ErrNotFound) {
		return director.New(director.Config{Chronicle: chronicle}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load director state: %w", err)
	}
	return director.New(cfg), nil
}

func (d Deps) saveDirector(ctx context.Context, state *director.State) error {
	if err := d.Store.PutDirectorState(ctx, state.Snapshot()); err != nil {
		return fmt.Errorf("save director state: %w", err)
	}
	return nil
}

// applyEvents folds outcome events into the chronicle's city state and
// persists the result. A no-op when the event slice is empty.
func (d Deps) applyEvents(ctx context.Context, chronicle string, events []director.OutcomeEvent) (*director.State, error) {
	state, err := d.loadDirector(ctx, chronicle)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return state, nil
	}
	state.Apply(events...)
	if err := d.saveDirector(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) ||
		apperrors.IsCode(err, apperrors.CodeCharacterNotFound)
}

func (d Deps) emit(ctx context.Context, chronicle, actor, action, detail string) {
	if chronicle == "" {
		return
	}
	d.Telemetry.Emit(ctx, chronicle, actor, action, detail)
}
