package character

import "strings"

// Mechanical trait tags recognized by the rules engine.
const (
	TagRemorseBonus      = "remorse_bonus"
	TagRemorsePenalty    = "remorse_penalty"
	TagStainSensitivity  = "stain_sensitivity"
	TagFrenzyResistBonus = "frenzy_resist_bonus"
	TagFrenzyProne       = "frenzy_prone"
)

func normName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Merits returns the character's merits.
func (c *Character) Merits() []Trait { return c.merits }

// Flaws returns the character's flaws.
func (c *Character) Flaws() []Trait { return c.flaws }

// AddMerit adds or replaces a merit by name.
func (c *Character) AddMerit(t Trait) {
	c.merits = upsertTrait(c.merits, t)
}

// AddFlaw adds or replaces a flaw by name.
func (c *Character) AddFlaw(t Trait) {
	c.flaws = upsertTrait(c.flaws, t)
}

// RemoveMerit deletes a merit by name.
func (c *Character) RemoveMerit(name string) {
	c.merits = removeTrait(c.merits, name)
}

// RemoveFlaw deletes a flaw by name.
func (c *Character) RemoveFlaw(name string) {
	c.flaws = removeTrait(c.flaws, name)
}

// MeritTags returns the set of tags across all merits.
func (c *Character) MeritTags() map[string]bool {
	return collectTags(c.merits)
}

// FlawTags returns the set of tags across all flaws.
func (c *Character) FlawTags() map[string]bool {
	return collectTags(c.flaws)
}

// FrenzyResistModifier returns the net self-control pool adjustment from
// merit and flaw tags.
func (c *Character) FrenzyResistModifier() int {
	mod := 0
	if c.MeritTags()[TagFrenzyResistBonus] {
		mod++
	}
	if c.FlawTags()[TagFrenzyProne] {
		mod--
	}
	return mod
}

// Touchstones returns the character's touchstones.
func (c *Character) Touchstones() []Touchstone { return c.touchstones }

// AddTouchstone adds or replaces a touchstone by name.
func (c *Character) AddTouchstone(t Touchstone) {
	n := normName(t.Name)
	out := c.touchstones[:0]
	for _, ts := range c.touchstones {
		if normName(ts.Name) != n {
			out = append(out, ts)
		}
	}
	c.touchstones = append(out, t)
}

// MarkTouchstoneDead flips a touchstone's alive flag by name.
// Returns false when no touchstone matches.
func (c *Character) MarkTouchstoneDead(name string) bool {
	n := normName(name)
	for i := range c.touchstones {
		if normName(c.touchstones[i].Name) == n {
			c.touchstones[i].Alive = false
			return true
		}
	}
	return false
}

// LivingTouchstones counts touchstones still alive.
func (c *Character) LivingTouchstones() int {
	count := 0
	for _, ts := range c.touchstones {
		if ts.Alive {
			count++
		}
	}
	return count
}

func upsertTrait(traits []Trait, t Trait) []Trait {
	out := traits[:0]
	n := normName(t.Name)
	for _, existing := range traits {
		if normName(existing.Name) != n {
			out = append(out, existing)
		}
	}
	return append(out, t)
}

func removeTrait(traits []Trait, name string) []Trait {
	out := traits[:0]
	n := normName(name)
	for _, existing := range traits {
		if normName(existing.Name) != n {
			out = append(out, existing)
		}
	}
	return out
}

func collectTags(traits []Trait) map[string]bool {
	tags := map[string]bool{}
	for _, t := range traits {
		for _, tag := range t.Tags {
			tags[tag] = true
		}
	}
	return tags
}
