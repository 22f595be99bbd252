package hunting

import (
	"testing"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
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

func intPtr(v int) *int { return &v }

func mustZone(t *testing.T, key string) zone.Zone {
	t.Helper()
	r, err := zone.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error: %v", err)
	}
	z, err := r.Get(key)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", key, err)
	}
	return z
}

func TestLookup(t *testing.T) {
	a, err := Lookup("farmer")
	if err != nil {
		t.Fatalf("Lookup(farmer) error: %v", err)
	}
	if a.BestSource != director.SourceAnimal || a.Floor != 2 {
		t.Errorf("farmer = %+v, want animal source with floor 2", a)
	}

	if _, err := Lookup("innocent"); !errors.IsCode(err, errors.CodePredatorArchetypeNotFound) {
		t.Errorf("unknown archetype error = %v, want %s", err, errors.CodePredatorArchetypeNotFound)
	}

	neutral, err := Lookup("")
	if err != nil {
		t.Fatalf("Lookup(empty) error: %v", err)
	}
	if neutral.BestSource != director.SourceHuman {
		t.Errorf("neutral source = %q, want human", neutral.BestSource)
	}
}

func TestFeedAmountTiers(t *testing.T) {
	tests := []struct {
		name      string
		successes int
		critPairs int
		want      int
	}{
		{name: "no successes", successes: 0, want: 0},
		{name: "below difficulty", successes: 1, want: 0},
		{name: "exactly difficulty", successes: 2, want: 1},
		{name: "clean success", successes: 3, want: 2},
		{name: "crit pair gorges", successes: 4, critPairs: 1, want: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roll := dice.Result{Successes: tc.successes, CritPairs: tc.critPairs}
			if got := feedAmount(roll, 2); got != tc.want {
				t.Errorf("feedAmount(%d succ, %d pairs) = %d, want %d",
					tc.successes, tc.critPairs, got, tc.want)
			}
		})
	}
}

func TestHuntFarmerFloor(t *testing.T) {
	c := character.New(character.Config{
		Name:        "Ruth",
		Hunger:      intPtr(3),
		PredatorKey: "farmer",
	})
	z := mustZone(t, "rural_outskirts")

	// Danger 2 drops the base pool to 2; the rural and farmland
	// ground bonuses raise it to 4. Hunger 3 leaves one normal die.
	r := &scriptedRoller{values: []int{10, 10, 6, 2}}
	res, err := Hunt(r, c, z)
	if err != nil {
		t.Fatalf("Hunt error: %v", err)
	}

	if res.Pool != 4 || res.Difficulty != 2 {
		t.Errorf("(pool, difficulty) = (%d, %d), want (4, 2)", res.Pool, res.Difficulty)
	}
	if res.Amount != 3 {
		t.Errorf("Amount = %d, want 3 on a crit pair", res.Amount)
	}
	if res.Source != director.SourceAnimal {
		t.Errorf("Source = %q, want animal", res.Source)
	}
	// Three points of feeding from hunger 3 would hit zero, but animal
	// blood cannot take a farmer below 2.
	if res.HungerBefore != 3 || res.HungerAfter != 2 {
		t.Errorf("hunger %d -> %d, want 3 -> 2", res.HungerBefore, res.HungerAfter)
	}
	if c.Hunger() != 2 {
		t.Errorf("character hunger = %d, want 2", c.Hunger())
	}
}

func TestHuntFailureFeedsNothing(t *testing.T) {
	c := character.New(character.Config{Name: "Vik", Hunger: intPtr(2), PredatorKey: "alleycat"})
	z := mustZone(t, "the_barrens")

	// Danger 5 raises the pool to 4 and the alleycat bonus to 6 with
	// difficulty 5; four successes still miss it.
	r := &scriptedRoller{values: []int{7, 7, 8, 9, 2, 3}}
	res, err := Hunt(r, c, z)
	if err != nil {
		t.Fatalf("Hunt error: %v", err)
	}
	if res.Pool != 6 || res.Difficulty != 5 {
		t.Errorf("(pool, difficulty) = (%d, %d), want (6, 5)", res.Pool, res.Difficulty)
	}
	if res.Amount != 0 || res.HungerAfter != 2 {
		t.Errorf("(amount, hunger) = (%d, %d), want (0, 2)", res.Amount, res.HungerAfter)
	}
	for _, ev := range res.Events {
		if ev.Kind == director.EventFeeding {
			t.Errorf("failed hunt emitted a feeding event: %+v", ev)
		}
	}
}

func TestHuntUnknownArchetype(t *testing.T) {
	c := character.New(character.Config{Name: "Vik", PredatorKey: "innocent"})
	if _, err := Hunt(dice.NewRoller(1), c, mustZone(t, "downtown_rack")); !errors.IsCode(err, errors.CodePredatorArchetypeNotFound) {
		t.Errorf("Hunt error = %v, want %s", err, errors.CodePredatorArchetypeNotFound)
	}
}

func TestBloodLeechSources(t *testing.T) {
	leech, err := Lookup("blood_leech")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}

	if got := leech.SourceIn(mustZone(t, "hollow_hill_cemetery")); got != director.SourceVampire {
		t.Errorf("SourceIn(occult zone) = %q, want vampire", got)
	}
	if got := leech.SourceIn(mustZone(t, "whitlow_suburbs")); got != director.SourceHuman {
		t.Errorf("SourceIn(suburbs) = %q, want human fallback", got)
	}
}

func TestHuntBloodLeechMortalMealCap(t *testing.T) {
	c := character.New(character.Config{Name: "Lidia", Hunger: intPtr(4), PredatorKey: "blood_leech"})
	z := mustZone(t, "downtown_rack")

	// Pool 3 + rack = 4, difficulty 3, hunger 4 caps hunger dice at
	// the pool. Four successes would feed 2, but mortal blood barely
	// answers a leech's craving.
	r := &scriptedRoller{values: []int{7, 7, 8, 9}}
	res, err := Hunt(r, c, z)
	if err != nil {
		t.Fatalf("Hunt error: %v", err)
	}
	if res.Source != director.SourceHuman {
		t.Fatalf("Source = %q, want human outside occult zones", res.Source)
	}
	if res.Amount != 1 {
		t.Errorf("Amount = %d, want capped at 1", res.Amount)
	}
	if res.HungerAfter != 3 {
		t.Errorf("hunger = %d, want 3", res.HungerAfter)
	}
}

func TestApplyFeedingWithoutFloor(t *testing.T) {
	c := character.New(character.Config{Name: "Vik", Hunger: intPtr(4)})
	arch, _ := Lookup("alleycat")

	res := ApplyFeeding(c, arch, director.SourceHuman, 2)
	if res.HungerBefore != 4 || res.HungerAfter != 2 {
		t.Errorf("hunger %d -> %d, want 4 -> 2", res.HungerBefore, res.HungerAfter)
	}

	res = ApplyFeeding(c, arch, director.SourceHuman, 5)
	if res.HungerAfter != 0 {
		t.Errorf("hunger = %d, want floor at 0", res.HungerAfter)
	}
}

func TestHuntEventsOnMessyCritical(t *testing.T) {
	c := character.New(character.Config{Name: "Vik", Hunger: intPtr(2), PredatorKey: "sandman"})
	z := mustZone(t, "whitlow_suburbs")

	// Danger 1 drops the pool to 2, suburb and residential bonuses
	// raise it to 4; hunger 2 splits it evenly. A ten on a hunger die
	// alongside a normal ten makes the feed messy.
	r := &scriptedRoller{values: []int{10, 6, 10, 2}}
	res, err := Hunt(r, c, z)
	if err != nil {
		t.Fatalf("Hunt error: %v", err)
	}
	if res.Roll.Outcome != dice.OutcomeMessyCritical {
		t.Fatalf("Outcome = %s, want messy critical", res.Roll.Outcome)
	}

	kinds := map[director.EventKind]bool{}
	for _, ev := range res.Events {
		kinds[ev.Kind] = true
	}
	if !kinds[director.EventFeeding] || !kinds[director.EventMessyCritical] {
		t.Errorf("Events = %+v, want feeding and messy critical", res.Events)
	}
}

func TestFeedValidatesSource(t *testing.T) {
	c := character.New(character.Config{Name: "Vik", Hunger: intPtr(4)})
	arch, _ := Lookup("alleycat")

	if _, err := Feed(c, arch, "soda", 2); !errors.IsCode(err, errors.CodeFeedingSourceInvalid) {
		t.Fatalf("Feed unknown source error = %v, want %s", err, errors.CodeFeedingSourceInvalid)
	}
	if c.Hunger() != 4 {
		t.Errorf("hunger = %d, want untouched 4", c.Hunger())
	}

	res, err := Feed(c, arch, director.SourceHuman, 2)
	if err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if res.HungerAfter != 2 {
		t.Errorf("hunger = %d, want 2", res.HungerAfter)
	}
}

func TestFeedHonorsArchetypeFloor(t *testing.T) {
	c := character.New(character.Config{Name: "Old MacDonagh", Hunger: intPtr(3), PredatorKey: "farmer"})
	arch, _ := Lookup("farmer")

	res, err := Feed(c, arch, director.SourceAnimal, 3)
	if err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if res.HungerAfter != 2 {
		t.Errorf("hunger = %d, want floor at 2", res.HungerAfter)
	}
	if len(res.Notes) == 0 {
		t.Error("expected a floor note")
	}
}

func TestFeedClampsNegativeAmount(t *testing.T) {
	c := character.New(character.Config{Name: "Vik", Hunger: intPtr(3)})
	arch, _ := Lookup("alleycat")

	res, err := Feed(c, arch, director.SourceHuman, -2)
	if err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if res.HungerAfter != 3 {
		t.Errorf("hunger = %d, want unchanged 3", res.HungerAfter)
	}
}
