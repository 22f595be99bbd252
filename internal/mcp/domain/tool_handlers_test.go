package domain

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
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

type memStore struct {
	characters map[string]character.Config
	directors  map[string]director.Config
	events     []storage.TelemetryEvent
}

func newMemStore() *memStore {
	return &memStore{
		characters: map[string]character.Config{},
		directors:  map[string]director.Config{},
	}
}

func (m *memStore) PutCharacter(_ context.Context, cfg character.Config) error {
	m.characters[cfg.Chronicle+"/"+cfg.Name] = cfg
	return nil
}

func (m *memStore) GetCharacter(_ context.Context, chronicle, name string) (character.Config, error) {
	cfg, ok := m.characters[chronicle+"/"+name]
	if !ok {
		return character.Config{}, storage.ErrNotFound
	}
	return cfg, nil
}

func (m *memStore) ListCharacters(_ context.Context, chronicle string) ([]string, error) {
	var names []string
	for key := range m.characters {
		if strings.HasPrefix(key, chronicle+"/") {
			names = append(names, strings.TrimPrefix(key, chronicle+"/"))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *memStore) PutDirectorState(_ context.Context, cfg director.Config) error {
	m.directors[cfg.Chronicle] = cfg
	return nil
}

func (m *memStore) GetDirectorState(_ context.Context, chronicle string) (director.Config, error) {
	cfg, ok := m.directors[chronicle]
	if !ok {
		return director.Config{}, storage.ErrNotFound
	}
	return cfg, nil
}

func (m *memStore) AppendTelemetry(_ context.Context, event storage.TelemetryEvent) error {
	m.events = append(m.events, event)
	return nil
}

func (m *memStore) ListTelemetry(_ context.Context, _ string, _ int) ([]storage.TelemetryEvent, error) {
	return m.events, nil
}

func (m *memStore) Close() error { return nil }

func newDeps(t *testing.T, r dice.Roller) (Deps, *memStore) {
	t.Helper()
	zones, err := zone.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error: %v", err)
	}
	weapons, err := combat.DefaultArsenal()
	if err != nil {
		t.Fatalf("DefaultArsenal() error: %v", err)
	}
	store := newMemStore()
	return Deps{
		Roller:     r,
		Store:      store,
		Encounters: combat.NewManager(),
		Frenzies:   frenzy.NewLedger(),
		Zones:      zones,
		Weapons:    weapons,
		Telemetry:  telemetry.New(store),
	}, store
}

func intPtr(v int) *int { return &v }

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestRollPoolHandler(t *testing.T) {
	deps, _ := newDeps(t, &scriptedRoller{values: []int{8, 3, 10, 10}})

	difficulty := 3
	_, result, err := RollPoolHandler(deps)(context.Background(), nil, RollPoolInput{
		Pool: 4, Hunger: 2, Difficulty: &difficulty,
	})
	if err != nil {
		t.Fatalf("roll_pool error: %v", err)
	}

	// Two tens pair for four successes plus two dice at 8 and 10.
	if result.Successes != 5 || result.CritPairs != 1 {
		t.Errorf("successes = %d crit pairs = %d, want 5 and 1", result.Successes, result.CritPairs)
	}
	if result.Outcome != "messy_critical" {
		t.Errorf("outcome = %q, want messy_critical", result.Outcome)
	}
	if result.Success == nil || !*result.Success || result.Margin == nil || *result.Margin != 2 {
		t.Errorf("check = %+v/%+v, want success with margin 2", result.Success, result.Margin)
	}
}

func TestRouseCheckHandlerPersistsHunger(t *testing.T) {
	deps, store := newDeps(t, &scriptedRoller{values: []int{2}})
	cfg := character.Config{Chronicle: "midnight", Name: "Elena", Hunger: intPtr(1)}
	if err := store.PutCharacter(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	_, result, err := RouseCheckHandler(deps)(context.Background(), nil, RouseCheckInput{
		Chronicle: "midnight", Name: "Elena",
	})
	if err != nil {
		t.Fatalf("rouse_check error: %v", err)
	}
	if result.Success || result.NewHunger != 2 {
		t.Errorf("result = %+v, want failed check raising hunger to 2", result)
	}

	saved, err := store.GetCharacter(context.Background(), "midnight", "Elena")
	if err != nil {
		t.Fatal(err)
	}
	if *saved.Hunger != 2 {
		t.Errorf("stored hunger = %d, want 2", *saved.Hunger)
	}
	if len(store.events) != 1 || store.events[0].Action != "rouse_check" {
		t.Errorf("telemetry = %+v, want one rouse_check event", store.events)
	}
}

func TestRouseCheckHandlerUnknownCharacter(t *testing.T) {
	deps, _ := newDeps(t, &scriptedRoller{})

	_, _, err := RouseCheckHandler(deps)(context.Background(), nil, RouseCheckInput{
		Chronicle: "midnight", Name: "Nobody",
	})
	if !apperrors.IsCode(err, apperrors.CodeCharacterNotFound) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeCharacterNotFound)
	}

	_, _, err = RouseCheckHandler(deps)(context.Background(), nil, RouseCheckInput{Name: "Elena"})
	if !apperrors.IsCode(err, apperrors.CodeCharacterEmptyChronicle) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeCharacterEmptyChronicle)
	}
}

func TestCombatHandlersLifecycle(t *testing.T) {
	ctx := context.Background()
	deps, _ := newDeps(t, &scriptedRoller{values: []int{5, 3, 7, 3}})

	if _, _, err := CombatStartHandler(deps)(ctx, nil, CombatStartInput{Context: "alley"}); err != nil {
		t.Fatalf("combat_start error: %v", err)
	}

	join := CombatJoinHandler(deps)
	if _, res, err := join(ctx, nil, CombatJoinInput{Context: "alley", Name: "Ash", NPC: &CombatNPC{}}); err != nil || res.Initiative != 7 {
		t.Fatalf("join Ash = %+v, %v; want initiative 7", res, err)
	}
	if _, res, err := join(ctx, nil, CombatJoinInput{Context: "alley", Name: "Brick", NPC: &CombatNPC{}}); err != nil || res.Initiative != 5 {
		t.Fatalf("join Brick = %+v, %v; want initiative 5", res, err)
	}

	_, initRes, err := CombatInitiativeHandler(deps)(ctx, nil, CombatInitiativeInput{Context: "alley"})
	if err != nil {
		t.Fatalf("combat_initiative error: %v", err)
	}
	if len(initRes.Order) != 2 || initRes.Order[0] != "Ash" || initRes.Actor != "Ash" {
		t.Errorf("initiative = %+v, want Ash first", initRes)
	}

	// Two dice at 7 and 3 give one success against defense 2.
	_, atkRes, err := CombatAttackHandler(deps)(ctx, nil, CombatAttackInput{
		Context: "alley", Attacker: "Ash", Defender: "Brick", Weapon: "fists",
	})
	if err != nil {
		t.Fatalf("combat_attack error: %v", err)
	}
	if atkRes.Pool != 2 || atkRes.Successes != 1 || atkRes.NetSuccesses != -1 {
		t.Errorf("attack = %+v, want pool 2, 1 success, net -1", atkRes)
	}
	if atkRes.DamageApplied != 0 || atkRes.DefenderDefeated {
		t.Errorf("attack = %+v, want a clean miss", atkRes)
	}

	_, turnRes, err := CombatTurnHandler(deps)(ctx, nil, CombatTurnInput{Context: "alley", Advance: true})
	if err != nil {
		t.Fatalf("combat_turn error: %v", err)
	}
	if turnRes.Actor != "Brick" {
		t.Errorf("next actor = %q, want Brick", turnRes.Actor)
	}

	if _, _, err := CombatEndHandler(deps)(ctx, nil, CombatEndInput{Context: "alley"}); err != nil {
		t.Fatalf("combat_end error: %v", err)
	}
	if _, _, err := CombatTurnHandler(deps)(ctx, nil, CombatTurnInput{Context: "alley"}); !apperrors.IsCode(err, apperrors.CodeEncounterNotFound) {
		t.Fatalf("turn after end error = %v, want %s", err, apperrors.CodeEncounterNotFound)
	}
}

func TestCombatEndSyncsStoredCharacters(t *testing.T) {
	ctx := context.Background()
	deps, store := newDeps(t, &scriptedRoller{values: []int{5}})
	cfg := character.Config{Chronicle: "midnight", Name: "Elena", Hunger: intPtr(4)}
	if err := store.PutCharacter(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	if _, _, err := CombatStartHandler(deps)(ctx, nil, CombatStartInput{Context: "alley"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := CombatJoinHandler(deps)(ctx, nil, CombatJoinInput{
		Context: "alley", Chronicle: "midnight", Name: "Elena",
	}); err != nil {
		t.Fatalf("combat_join error: %v", err)
	}

	enc, err := deps.Encounters.Get("alley")
	if err != nil {
		t.Fatal(err)
	}
	cb, err := enc.Combatant("Elena")
	if err != nil {
		t.Fatal(err)
	}
	cb.SetFrenzied(true)

	_, endRes, err := CombatEndHandler(deps)(ctx, nil, CombatEndInput{Context: "alley", Chronicle: "midnight"})
	if err != nil {
		t.Fatalf("combat_end error: %v", err)
	}
	if len(endRes.Synced) != 1 || endRes.Synced[0] != "Elena" {
		t.Errorf("synced = %v, want [Elena]", endRes.Synced)
	}

	saved, err := store.GetCharacter(ctx, "midnight", "Elena")
	if err != nil {
		t.Fatal(err)
	}
	if !saved.Frenzied || *saved.Hunger != 4 {
		t.Errorf("saved = frenzied %t hunger %d, want frenzied at hunger 4", saved.Frenzied, *saved.Hunger)
	}
}

func TestFrenzyCheckHandler(t *testing.T) {
	ctx := context.Background()
	deps, store := newDeps(t, &scriptedRoller{values: []int{1, 2, 3, 1}})
	cfg := character.Config{Chronicle: "midnight", Name: "Vik", Hunger: intPtr(2)}
	if err := store.PutCharacter(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	_, result, err := FrenzyCheckHandler(deps)(ctx, nil, FrenzyCheckInput{
		Chronicle: "midnight", Name: "Vik", Trigger: "messy_critical", Zone: "downtown_rack",
	})
	if err != nil {
		t.Fatalf("frenzy_check error: %v", err)
	}
	if !result.Triggered || !result.Frenzied {
		t.Errorf("result = %+v, want a failed test", result)
	}
	if !deps.Frenzies.Frenzied("Vik") {
		t.Error("ledger does not mark Vik frenzied")
	}
	if result.ThreatLevel < 1 {
		t.Errorf("threat level = %d, want at least 1 after the frenzy event", result.ThreatLevel)
	}

	saved, _ := store.GetCharacter(ctx, "midnight", "Vik")
	if !saved.Frenzied {
		t.Error("frenzy flag was not persisted")
	}

	_, clearRes, err := FrenzyClearHandler(deps)(ctx, nil, FrenzyClearInput{Chronicle: "midnight", Name: "Vik"})
	if err != nil {
		t.Fatalf("frenzy_clear error: %v", err)
	}
	if !clearRes.Cleared {
		t.Error("clear reported no active frenzy")
	}
	saved, _ = store.GetCharacter(ctx, "midnight", "Vik")
	if saved.Frenzied {
		t.Error("frenzy flag survived the clear")
	}
}

func TestFrenzyCheckHandlerUnknownTrigger(t *testing.T) {
	deps, _ := newDeps(t, &scriptedRoller{})

	_, _, err := FrenzyCheckHandler(deps)(context.Background(), nil, FrenzyCheckInput{
		Chronicle: "midnight", Name: "Vik", Trigger: "stubbed_toe",
	})
	if !apperrors.IsCode(err, apperrors.CodeCombatUnknownTriggerKind) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeCombatUnknownTriggerKind)
	}
}

func TestHuntHandler(t *testing.T) {
	ctx := context.Background()
	deps, store := newDeps(t, &scriptedRoller{values: []int{8, 8, 7, 7, 2}})
	cfg := character.Config{
		Chronicle:   "midnight",
		Name:        "Elena",
		Hunger:      intPtr(3),
		PredatorKey: "siren",
		Location:    "downtown_rack",
	}
	if err := store.PutCharacter(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	_, result, err := HuntHandler(deps)(ctx, nil, HuntInput{Chronicle: "midnight", Name: "Elena"})
	if err != nil {
		t.Fatalf("hunt error: %v", err)
	}

	// Base 3, +1 club bonus, +1 rack tag at difficulty 3; four
	// successes feed two hunger.
	if result.Zone != "downtown_rack" || result.Pool != 5 || result.Difficulty != 3 {
		t.Errorf("result = %+v, want pool 5 difficulty 3 in the rack", result)
	}
	if result.Amount != 2 || result.HungerAfter != 1 {
		t.Errorf("result = %+v, want 2 slaked down to hunger 1", result)
	}
	if result.ThreatLevel < 1 {
		t.Errorf("threat level = %d, want at least 1", result.ThreatLevel)
	}

	saved, _ := store.GetCharacter(ctx, "midnight", "Elena")
	if *saved.Hunger != 1 {
		t.Errorf("stored hunger = %d, want 1", *saved.Hunger)
	}
	if _, ok := store.directors["midnight"]; !ok {
		t.Error("feeding event did not persist director state")
	}
}

func TestTravelHandlerUnknownZone(t *testing.T) {
	ctx := context.Background()
	deps, store := newDeps(t, &scriptedRoller{})
	if err := store.PutCharacter(ctx, character.Config{Chronicle: "midnight", Name: "Elena"}); err != nil {
		t.Fatal(err)
	}

	_, _, err := TravelHandler(deps)(ctx, nil, TravelInput{
		Chronicle: "midnight", Name: "Elena", Destination: "atlantis",
	})
	if !apperrors.IsCode(err, apperrors.CodeZoneNotFound) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeZoneNotFound)
	}
}

func TestTravelHandlerMovesCharacter(t *testing.T) {
	ctx := context.Background()
	deps, store := newDeps(t, &scriptedRoller{values: []int{9}})
	if err := store.PutCharacter(ctx, character.Config{Chronicle: "midnight", Name: "Elena"}); err != nil {
		t.Fatal(err)
	}

	_, result, err := TravelHandler(deps)(ctx, nil, TravelInput{
		Chronicle: "midnight", Name: "Elena", Destination: "old_harbor",
	})
	if err != nil {
		t.Fatalf("travel error: %v", err)
	}
	if result.Destination != "old_harbor" || result.Encounter != nil {
		t.Errorf("result = %+v, want a quiet trip to old_harbor", result)
	}

	saved, _ := store.GetCharacter(ctx, "midnight", "Elena")
	if saved.Location != "old_harbor" {
		t.Errorf("stored location = %q, want old_harbor", saved.Location)
	}
}

func TestCityAdjustHandler(t *testing.T) {
	ctx := context.Background()
	deps, store := newDeps(t, &scriptedRoller{})

	_, result, err := CityAdjustHandler(deps)(ctx, nil, CityAdjustInput{
		Chronicle: "midnight", Kind: AdjustPressure, Key: director.PressureViolence, Delta: 25,
	})
	if err != nil {
		t.Fatalf("city_adjust error: %v", err)
	}
	if result.After != director.PressureMax || result.ThreatLevel != 2 {
		t.Errorf("result = %+v, want clamp to 20 at threat 2", result)
	}
	if result.Severity != director.SeverityGuarded {
		t.Errorf("severity = %q, want %q", result.Severity, director.SeverityGuarded)
	}
	if _, ok := store.directors["midnight"]; !ok {
		t.Error("adjustment was not persisted")
	}

	_, _, err = CityAdjustHandler(deps)(ctx, nil, CityAdjustInput{
		Chronicle: "midnight", Kind: "weather", Delta: 1,
	})
	if err == nil {
		t.Error("unknown kind error = nil, want error")
	}
}

func TestCityResources(t *testing.T) {
	ctx := context.Background()
	deps, _ := newDeps(t, &scriptedRoller{})

	readCity := CitySummaryResourceHandler(deps)
	res, err := readCity(ctx, readRequest("nocturne://city/midnight"))
	if err != nil {
		t.Fatalf("city summary error: %v", err)
	}
	if len(res.Contents) != 1 || !strings.Contains(res.Contents[0].Text, `"threat_level": 1`) {
		t.Errorf("city summary = %+v, want threat level 1 payload", res.Contents)
	}

	if _, err := readCity(ctx, readRequest("nocturne://elsewhere")); err == nil {
		t.Error("malformed URI error = nil, want error")
	}

	readZones := ZoneListResourceHandler(deps)
	res, err = readZones(ctx, nil)
	if err != nil {
		t.Fatalf("zone list error: %v", err)
	}
	if !strings.Contains(res.Contents[0].Text, `"default": "downtown_rack"`) {
		t.Errorf("zone list = %s, want default downtown_rack", res.Contents[0].Text)
	}
}

func TestRollPoolHandlerRejectsNegativePool(t *testing.T) {
	deps, _ := newDeps(t, &scriptedRoller{})

	_, _, err := RollPoolHandler(deps)(context.Background(), nil, RollPoolInput{Pool: -3})
	if !apperrors.IsCode(err, apperrors.CodeDicePoolNegative) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeDicePoolNegative)
	}
}

func TestFeedHandler(t *testing.T) {
	ctx := context.Background()
	deps, store := newDeps(t, &scriptedRoller{})
	cfg := character.Config{
		Chronicle:   "midnight",
		Name:        "Old MacDonagh",
		Hunger:      intPtr(3),
		PredatorKey: "farmer",
		Location:    "rural_outskirts",
	}
	if err := store.PutCharacter(ctx, cfg); err != nil {
		t.Fatal(err)
	}

	_, result, err := FeedHandler(deps)(ctx, nil, FeedInput{
		Chronicle: "midnight", Name: "Old MacDonagh", Source: "animal", Amount: 3,
	})
	if err != nil {
		t.Fatalf("feed error: %v", err)
	}
	if result.HungerAfter != 2 {
		t.Errorf("hunger after = %d, want floor at 2", result.HungerAfter)
	}

	saved, _ := store.GetCharacter(ctx, "midnight", "Old MacDonagh")
	if *saved.Hunger != 2 {
		t.Errorf("stored hunger = %d, want 2", *saved.Hunger)
	}

	_, _, err = FeedHandler(deps)(ctx, nil, FeedInput{
		Chronicle: "midnight", Name: "Old MacDonagh", Source: "soda", Amount: 1,
	})
	if !apperrors.IsCode(err, apperrors.CodeFeedingSourceInvalid) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeFeedingSourceInvalid)
	}
}
