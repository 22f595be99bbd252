// Package telemetry records engine actions into durable storage.
package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/nocturne-rpg/nocturne/internal/storage"
)

// Emitter appends action events to a telemetry store. A nil Emitter or
// a nil store drops events, so callers never guard emission.
type Emitter struct {
	store storage.TelemetryStore
	now   func() time.Time
}

// New builds an Emitter over the given store.
func New(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, now: time.Now}
}

// Emit records one action event. Persistence failures are logged and
// swallowed so telemetry never blocks the action that produced it.
func (e *Emitter) Emit(ctx context.Context, chronicle, actor, action, detail string) {
	if e == nil || e.store == nil {
		return
	}
	event := storage.TelemetryEvent{
		Chronicle: chronicle,
		Actor:     actor,
		Action:    action,
		Detail:    detail,
		CreatedAt: e.now(),
	}
	if err := e.store.AppendTelemetry(ctx, event); err != nil {
		log.Printf("telemetry: append %s: %v", action, err)
	}
}
