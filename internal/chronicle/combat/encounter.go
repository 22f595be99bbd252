package combat

import (
	"fmt"
	"sort"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/frenzy"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

// Phase is the encounter lifecycle state.
type Phase string

const (
	PhaseEmpty  Phase = "empty"
	PhaseActive Phase = "active"
	PhaseEnded  Phase = "ended"
)

// Encounter owns the combatants, turn order, and ammo tracking for one
// fight. It is not safe for concurrent use; the hosting layer
// serializes commands per context.
type Encounter struct {
	context string
	phase   Phase
	roller  dice.Roller
	ledger  *frenzy.Ledger

	combatants map[string]*Combatant
	joined     []string
	order      []string
	turn       int
	round      int

	// ammo[combatant][weapon key] = rounds remaining
	ammo map[string]map[string]int
}

// NewEncounter creates an empty encounter for one context.
func NewEncounter(contextID string, r dice.Roller) *Encounter {
	return &Encounter{
		context:    contextID,
		phase:      PhaseEmpty,
		roller:     r,
		ledger:     frenzy.NewLedger(),
		combatants: make(map[string]*Combatant),
		ammo:       make(map[string]map[string]int),
	}
}

// Context returns the hosting context id the encounter belongs to.
func (e *Encounter) Context() string { return e.context }

// Phase returns the lifecycle state.
func (e *Encounter) Phase() Phase { return e.phase }

// Round returns the current round, starting at 1 once initiative is
// built.
func (e *Encounter) Round() int { return e.round }

// Ledger returns the encounter's frenzy ledger.
func (e *Encounter) Ledger() *frenzy.Ledger { return e.ledger }

// Combatant looks up a participant by name.
func (e *Encounter) Combatant(name string) (*Combatant, error) {
	c, ok := e.combatants[name]
	if !ok {
		return nil, errors.WithMetadata(errors.CodeCombatantNotInEncounter,
			fmt.Sprintf("%q is not in this encounter", name),
			map[string]string{"combatant": name})
	}
	return c, nil
}

// Combatants returns the participants in join order.
func (e *Encounter) Combatants() []*Combatant {
	out := make([]*Combatant, 0, len(e.joined))
	for _, name := range e.joined {
		out = append(out, e.combatants[name])
	}
	return out
}

// AddCombatant appends a participant and rolls d10 + Dexterity for
// initiative. Joining an ended encounter fails.
func (e *Encounter) AddCombatant(c *Combatant) error {
	if e.phase == PhaseEnded {
		return errors.New(errors.CodeEncounterEnded, "encounter has ended")
	}
	if _, ok := e.combatants[c.Name()]; !ok {
		e.joined = append(e.joined, c.Name())
	}
	e.combatants[c.Name()] = c
	c.initiative = e.roller.D10() + c.Attribute("dexterity")
	return nil
}

// BuildInitiative fixes the turn order, descending by initiative with
// ties kept in join order, and activates the encounter.
func (e *Encounter) BuildInitiative() ([]string, error) {
	if e.phase == PhaseEnded {
		return nil, errors.New(errors.CodeEncounterEnded, "encounter has ended")
	}
	if len(e.joined) == 0 {
		return nil, errors.New(errors.CodeEncounterEmpty, "no combatants to order")
	}
	e.order = append([]string(nil), e.joined...)
	sort.SliceStable(e.order, func(i, j int) bool {
		return e.combatants[e.order[i]].initiative > e.combatants[e.order[j]].initiative
	})
	e.turn = 0
	e.round = 1
	e.phase = PhaseActive
	return append([]string(nil), e.order...), nil
}

// CurrentActor returns the name whose turn it is.
func (e *Encounter) CurrentActor() (string, error) {
	if e.phase != PhaseActive {
		return "", errors.New(errors.CodeEncounterNotActive, "initiative has not been built")
	}
	return e.order[e.turn], nil
}

// NextTurn advances the circular turn index and returns the new actor.
// Wrapping past the last combatant starts a new round.
func (e *Encounter) NextTurn() (string, error) {
	if e.phase != PhaseActive {
		return "", errors.New(errors.CodeEncounterNotActive, "initiative has not been built")
	}
	e.turn = (e.turn + 1) % len(e.order)
	if e.turn == 0 {
		e.round++
	}
	return e.order[e.turn], nil
}

// End closes the encounter. No transitions lead out of the ended
// phase.
func (e *Encounter) End() {
	e.phase = PhaseEnded
}

// useAmmo decrements the shooter's remaining rounds for a magazine
// weapon. Weapons without a magazine always fire.
func (e *Encounter) useAmmo(shooter string, w Weapon) (remaining int, err error) {
	if !w.Ranged() || w.Magazine <= 0 {
		return -1, nil
	}
	mags, ok := e.ammo[shooter]
	if !ok {
		mags = make(map[string]int)
		e.ammo[shooter] = mags
	}
	current, ok := mags[w.Key]
	if !ok {
		current = w.Magazine
	}
	if current <= 0 {
		return 0, errors.WithMetadata(errors.CodeWeaponOutOfAmmo,
			fmt.Sprintf("%s is empty", w.Name),
			map[string]string{"combatant": shooter, "weapon": w.Key})
	}
	current--
	mags[w.Key] = current
	return current, nil
}

// Reload refills a magazine weapon and returns the new round count.
func (e *Encounter) Reload(shooter string, w Weapon) (int, error) {
	if _, err := e.Combatant(shooter); err != nil {
		return 0, err
	}
	if !w.Ranged() || w.Magazine <= 0 {
		return 0, errors.WithMetadata(errors.CodeWeaponNotReloadable,
			fmt.Sprintf("%s has no magazine", w.Name),
			map[string]string{"weapon": w.Key})
	}
	mags, ok := e.ammo[shooter]
	if !ok {
		mags = make(map[string]int)
		e.ammo[shooter] = mags
	}
	mags[w.Key] = w.Magazine
	return w.Magazine, nil
}
