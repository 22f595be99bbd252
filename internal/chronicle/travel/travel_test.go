package travel

import (
	"testing"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

type scriptedRoller struct {
	values []int
	index  int
}

func (s *scriptedRoller) D10() int {
	if s.index >= len(s.values) {
		return 2
	}
	v := s.values[s.index]
	s.index++
	return v
}

func mustRegistry(t *testing.T) *zone.Registry {
	t.Helper()
	r, err := zone.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error: %v", err)
	}
	return r
}

func TestTravelQuietTrip(t *testing.T) {
	reg := mustRegistry(t)
	c := character.New(character.Config{Name: "Elena"})

	// Violence risk 1 in the suburbs; a 5 travels clean.
	res, err := Travel(&scriptedRoller{values: []int{5}}, c, reg, "whitlow_suburbs")
	if err != nil {
		t.Fatalf("Travel() error: %v", err)
	}

	if res.Origin != "downtown_rack" {
		t.Errorf("origin = %q, want default zone downtown_rack", res.Origin)
	}
	if res.Destination != "whitlow_suburbs" {
		t.Errorf("destination = %q, want whitlow_suburbs", res.Destination)
	}
	if res.Encounter != nil {
		t.Errorf("encounter = %+v, want none", res.Encounter)
	}
	if len(res.Events) != 0 {
		t.Errorf("events = %+v, want none", res.Events)
	}
	if c.Location() != "whitlow_suburbs" {
		t.Errorf("location = %q, want whitlow_suburbs", c.Location())
	}
}

func TestTravelEncounter(t *testing.T) {
	reg := mustRegistry(t)
	c := character.New(character.Config{Name: "Vik", Location: "old_harbor"})

	// Violence risk 5 in the Barrens; the 3 triggers an encounter and
	// the second die picks the hunters from the two-entry table.
	res, err := Travel(&scriptedRoller{values: []int{3, 2}}, c, reg, "the_barrens")
	if err != nil {
		t.Fatalf("Travel() error: %v", err)
	}

	if res.Origin != "old_harbor" {
		t.Errorf("origin = %q, want old_harbor", res.Origin)
	}
	if res.Encounter == nil {
		t.Fatal("encounter = nil, want hunters")
	}
	if res.Encounter.Severity != 5 {
		t.Errorf("encounter severity = %d, want 5", res.Encounter.Severity)
	}

	if len(res.Events) != 1 {
		t.Fatalf("events = %+v, want one street encounter", res.Events)
	}
	ev := res.Events[0]
	if ev.Kind != director.EventStreetEncounter {
		t.Errorf("event kind = %q, want %q", ev.Kind, director.EventStreetEncounter)
	}
	if ev.Zone != "the_barrens" || ev.Actor != "Vik" || ev.Severity != 5 {
		t.Errorf("event = %+v, want barrens severity 5 for Vik", ev)
	}
	if c.Location() != "the_barrens" {
		t.Errorf("location = %q, want the_barrens", c.Location())
	}
}

func TestTravelEncounterFeedsCityModel(t *testing.T) {
	reg := mustRegistry(t)
	c := character.New(character.Config{Name: "Vik", Location: "downtown_rack"})

	res, err := Travel(&scriptedRoller{values: []int{1, 1}}, c, reg, "old_harbor")
	if err != nil {
		t.Fatalf("Travel() error: %v", err)
	}
	if res.Encounter == nil {
		t.Fatal("encounter = nil, want dockworkers")
	}

	st := director.New(director.Config{Chronicle: "test"})
	st.Apply(res.Events...)
	if got, _ := st.Pressure(director.PressureViolence); got == 0 {
		t.Error("violence pressure = 0, want a bump from the encounter tags")
	}
}

func TestTravelZeroViolenceNeverAmbushes(t *testing.T) {
	reg := mustRegistry(t)
	c := character.New(character.Config{Name: "Elena"})

	// Elysium's violence risk is 0; even a 1 cannot trigger.
	res, err := Travel(&scriptedRoller{values: []int{1}}, c, reg, "elysium_quarter")
	if err != nil {
		t.Fatalf("Travel() error: %v", err)
	}
	if res.Encounter != nil {
		t.Errorf("encounter = %+v, want none", res.Encounter)
	}
}

func TestTravelUnknownZone(t *testing.T) {
	reg := mustRegistry(t)
	c := character.New(character.Config{Name: "Elena", Location: "downtown_rack"})

	_, err := Travel(&scriptedRoller{values: []int{5}}, c, reg, "atlantis")
	if !errors.IsCode(err, errors.CodeZoneNotFound) {
		t.Fatalf("error = %v, want %s", err, errors.CodeZoneNotFound)
	}
	if c.Location() != "downtown_rack" {
		t.Errorf("location = %q, want unchanged downtown_rack", c.Location())
	}
}
