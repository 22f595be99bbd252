// Package combat resolves attacks between combatants and manages
// per-encounter turn order.
package combat

import (
	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
)

// Default ratings substituted for missing sheet fields.
const (
	DefaultMaxHealth     = 10
	DefaultAttribute     = 2
	vampireHungerResting = 1
)

// Combatant is one participant in an encounter. Build one with
// FromCharacter or FromNPC; the zero value is not valid.
type Combatant struct {
	name          string
	isVampire     bool
	hpSuperficial int
	hpAggravated  int
	maxHealth     int
	hunger        int
	wpSuperficial int
	wpAggravated  int
	defense       int
	fortitude     int
	frenzied      bool
	initiative    int

	attributes  map[string]int
	skills      map[string]int
	disciplines map[string]int
}

// NPCSheet is the record shape consumed to build an NPC combatant.
// Missing fields fall back to documented defaults.
type NPCSheet struct {
	Name        string
	IsVampire   bool
	MaxHealth   int
	Fortitude   int
	Attributes  map[string]int
	Skills      map[string]int
	Disciplines map[string]int
}

// FromCharacter builds a vampire combatant from a player character.
// Defense derives from Wits + Athletics or Wits + Brawl, whichever is
// higher; fortitude comes from the discipline rating.
func FromCharacter(c *character.Character) *Combatant {
	snap := c.Snapshot()
	cb := &Combatant{
		name:        c.Name(),
		isVampire:   true,
		maxHealth:   DefaultMaxHealth,
		hunger:      c.Hunger(),
		frenzied:    c.Frenzied(),
		fortitude:   c.Discipline("fortitude"),
		attributes:  copyRatings(snap.Attributes),
		skills:      copyRatings(snap.Skills),
		disciplines: copyRatings(snap.Disciplines),
	}
	cb.defense = deriveDefense(cb)
	return cb
}

// FromNPC builds a combatant from an NPC sheet. Non-vampires carry no
// hunger; vampire NPCs start at resting hunger.
func FromNPC(sheet NPCSheet) *Combatant {
	cb := &Combatant{
		name:        sheet.Name,
		isVampire:   sheet.IsVampire,
		maxHealth:   sheet.MaxHealth,
		fortitude:   sheet.Fortitude,
		attributes:  copyRatings(sheet.Attributes),
		skills:      copyRatings(sheet.Skills),
		disciplines: copyRatings(sheet.Disciplines),
	}
	if cb.maxHealth <= 0 {
		cb.maxHealth = DefaultMaxHealth
	}
	if cb.isVampire {
		cb.hunger = vampireHungerResting
	}
	cb.defense = deriveDefense(cb)
	return cb
}

func deriveDefense(c *Combatant) int {
	wits := c.Attribute("wits")
	athletics := c.Skill("athletics")
	brawl := c.Skill("brawl")
	return max(wits+athletics, wits+brawl)
}

func copyRatings(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Name returns the combatant's unique name within an encounter.
func (c *Combatant) Name() string { return c.name }

// IsVampire reports whether V5 vampire damage rules apply.
func (c *Combatant) IsVampire() bool { return c.isVampire }

// Hunger returns the combatant's current hunger.
func (c *Combatant) Hunger() int { return c.hunger }

// Frenzied reports whether the beast is driving.
func (c *Combatant) Frenzied() bool { return c.frenzied }

// SetFrenzied flips the frenzy flag.
func (c *Combatant) SetFrenzied(v bool) { c.frenzied = v }

// Defense is the flat success reduction applied to incoming attacks.
func (c *Combatant) Defense() int { return c.defense }

// Fortitude is the flat damage reduction applied before halving.
func (c *Combatant) Fortitude() int { return c.fortitude }

// Initiative returns the rolled initiative score.
func (c *Combatant) Initiative() int { return c.initiative }

// Health returns the current damage pools and the track size.
func (c *Combatant) Health() (superficial, aggravated, maxHealth int) {
	return c.hpSuperficial, c.hpAggravated, c.maxHealth
}

// IsDefeated reports whether the damage track is full.
func (c *Combatant) IsDefeated() bool {
	return c.hpSuperficial+c.hpAggravated >= c.maxHealth
}

// Attribute returns a rated attribute, defaulting unset ones.
func (c *Combatant) Attribute(name string) int {
	if v, ok := c.attributes[name]; ok {
		return v
	}
	return DefaultAttribute
}

// Skill returns a rated skill; unset skills are 0.
func (c *Combatant) Skill(name string) int {
	return c.skills[name]
}

// Discipline returns a discipline rating; unset disciplines are 0.
func (c *Combatant) Discipline(name string) int {
	return c.disciplines[name]
}
