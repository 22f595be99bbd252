// Package character owns the long-lived resource block attached to a
// player or NPC record: hunger, willpower, humanity and stains, blood
// potency, predator archetype, and the frenzy flag.
//
// Every counter is bounded; setters clamp instead of erroring so the
// block can never hold an out-of-range value.
package character

// Bounds and defaults for the resource counters.
const (
	HungerMin           = 0
	HungerMax           = 5
	HungerDefault       = 1
	HumanityMin         = 0
	HumanityMax         = 10
	HumanityDefault     = 7
	BloodPotencyMin     = 0
	BloodPotencyMax     = 10
	BloodPotencyDefault = 1
	WillpowerMaxDefault = 5
)

// Defaults substituted for missing sheet fields.
const (
	AttributeDefault  = 2
	SkillDefault      = 0
	DisciplineDefault = 0
)

// Trait is a merit or flaw entry. Tags drive mechanical hooks such as
// remorse modifiers and frenzy resistance.
type Trait struct {
	Name string
	Dots int
	Tags []string
}

// Touchstone anchors a character's humanity to a living mortal.
type Touchstone struct {
	Name        string
	Description string
	Alive       bool
}

// WillpowerBlock tracks willpower as max plus damage components.
type WillpowerBlock struct {
	Max         int
	Superficial int
	Aggravated  int
}

// Current returns effective willpower: max minus superficial minus
// double-weighted aggravated damage, floored at zero.
func (w WillpowerBlock) Current() int {
	cur := w.Max - w.Superficial - 2*w.Aggravated
	return max(cur, 0)
}

// Character is the mutable resource block. Construct with New; zero
// values are not valid.
type Character struct {
	chronicle   string
	name        string
	hunger      int
	willpower   WillpowerBlock
	humanity    int
	stains      int
	potency     int
	predatorKey string
	frenzied    bool
	location    string

	merits      []Trait
	flaws       []Trait
	touchstones []Touchstone

	attributes  map[string]int
	skills      map[string]int
	disciplines map[string]int
}

// Config carries everything needed to build or restore a Character.
// Zero-valued counters fall back to the documented defaults; explicit
// values are clamped into range.
type Config struct {
	Chronicle    string
	Name         string
	Hunger       *int
	WillpowerMax int
	WillpowerSup int
	WillpowerAgg int
	Humanity     *int
	Stains       int
	BloodPotency *int
	PredatorKey  string
	Frenzied     bool
	Location     string
	Merits       []Trait
	Flaws        []Trait
	Touchstones  []Touchstone
	Attributes   map[string]int
	Skills       map[string]int
	Disciplines  map[string]int
}

// New builds a Character from config, applying defaults and clamps.
func New(cfg Config) *Character {
	c := &Character{
		chronicle:   cfg.Chronicle,
		name:        cfg.Name,
		hunger:      HungerDefault,
		humanity:    HumanityDefault,
		potency:     BloodPotencyDefault,
		predatorKey: cfg.PredatorKey,
		frenzied:    cfg.Frenzied,
		location:    cfg.Location,
		merits:      cfg.Merits,
		flaws:       cfg.Flaws,
		touchstones: cfg.Touchstones,
		attributes:  cfg.Attributes,
		skills:      cfg.Skills,
		disciplines: cfg.Disciplines,
	}
	if cfg.Hunger != nil {
		c.hunger = clamp(*cfg.Hunger, HungerMin, HungerMax)
	}
	if cfg.Humanity != nil {
		c.humanity = clamp(*cfg.Humanity, HumanityMin, HumanityMax)
	}
	if cfg.BloodPotency != nil {
		c.potency = clamp(*cfg.BloodPotency, BloodPotencyMin, BloodPotencyMax)
	}
	c.stains = max(cfg.Stains, 0)
	c.willpower = WillpowerBlock{
		Max:         cfg.WillpowerMax,
		Superficial: max(cfg.WillpowerSup, 0),
		Aggravated:  max(cfg.WillpowerAgg, 0),
	}
	if c.willpower.Max <= 0 {
		c.willpower.Max = WillpowerMaxDefault
	}
	if c.attributes == nil {
		c.attributes = map[string]int{}
	}
	if c.skills == nil {
		c.skills = map[string]int{}
	}
	if c.disciplines == nil {
		c.disciplines = map[string]int{}
	}
	return c
}

// Snapshot returns a Config that rebuilds this character via New.
func (c *Character) Snapshot() Config {
	hunger := c.hunger
	humanity := c.humanity
	potency := c.potency
	return Config{
		Chronicle:    c.chronicle,
		Name:         c.name,
		Hunger:       &hunger,
		WillpowerMax: c.willpower.Max,
		WillpowerSup: c.willpower.Superficial,
		WillpowerAgg: c.willpower.Aggravated,
		Humanity:     &humanity,
		Stains:       c.stains,
		BloodPotency: &potency,
		PredatorKey:  c.predatorKey,
		Frenzied:     c.frenzied,
		Location:     c.location,
		Merits:       c.merits,
		Flaws:        c.flaws,
		Touchstones:  c.touchstones,
		Attributes:   c.attributes,
		Skills:       c.skills,
		Disciplines:  c.disciplines,
	}
}

// Chronicle returns the chronicle this character belongs to.
func (c *Character) Chronicle() string { return c.chronicle }

// Name returns the character's name.
func (c *Character) Name() string { return c.name }

// PredatorKey returns the predator archetype key, if any.
func (c *Character) PredatorKey() string { return c.predatorKey }

// SetPredatorKey updates the predator archetype key.
func (c *Character) SetPredatorKey(key string) { c.predatorKey = key }

// Location returns the character's current zone key.
func (c *Character) Location() string { return c.location }

// SetLocation updates the character's current zone key.
func (c *Character) SetLocation(zoneKey string) { c.location = zoneKey }

// Frenzied reports whether the frenzy flag is set.
func (c *Character) Frenzied() bool { return c.frenzied }

// SetFrenzied flips the frenzy flag.
func (c *Character) SetFrenzied(v bool) { c.frenzied = v }

// Hunger returns current hunger.
func (c *Character) Hunger() int { return c.hunger }

// SetHunger clamps and stores hunger, returning before and after.
func (c *Character) SetHunger(v int) (before, after int) {
	before = c.hunger
	c.hunger = clamp(v, HungerMin, HungerMax)
	return before, c.hunger
}

// Humanity returns current humanity.
func (c *Character) Humanity() int { return c.humanity }

// SetHumanity clamps and stores humanity, returning before and after.
func (c *Character) SetHumanity(v int) (before, after int) {
	before = c.humanity
	c.humanity = clamp(v, HumanityMin, HumanityMax)
	return before, c.humanity
}

// Stains returns accumulated stains.
func (c *Character) Stains() int { return c.stains }

// AdjustStains adds delta to stains, flooring at zero.
func (c *Character) AdjustStains(delta int) (before, after int) {
	before = c.stains
	c.stains = max(c.stains+delta, 0)
	return before, c.stains
}

// BloodPotency returns current blood potency.
func (c *Character) BloodPotency() int { return c.potency }

// SetBloodPotency clamps and stores blood potency.
func (c *Character) SetBloodPotency(v int) (before, after int) {
	before = c.potency
	c.potency = clamp(v, BloodPotencyMin, BloodPotencyMax)
	return before, c.potency
}

// BloodSurgeBonus approximates the blood surge bonus dice by potency.
func (c *Character) BloodSurgeBonus() int {
	switch {
	case c.potency <= 1:
		return 1
	case c.potency <= 3:
		return 2
	case c.potency <= 5:
		return 3
	default:
		return 4
	}
}

// Willpower returns the willpower block.
func (c *Character) Willpower() WillpowerBlock { return c.willpower }

// CurrentWillpower returns effective willpower after damage.
func (c *Character) CurrentWillpower() int { return c.willpower.Current() }

// SetWillpowerMax stores a new maximum, keeping damage components.
func (c *Character) SetWillpowerMax(v int) {
	c.willpower.Max = max(v, 1)
}

// ApplyWillpowerDamage applies superficial and aggravated willpower
// damage. Negative deltas heal. Each component floors at zero but is
// not capped at max: over-damage accumulates as narrative pressure.
func (c *Character) ApplyWillpowerDamage(supDelta, aggDelta int) (before, after WillpowerBlock) {
	before = c.willpower
	c.willpower.Superficial = max(c.willpower.Superficial+supDelta, 0)
	c.willpower.Aggravated = max(c.willpower.Aggravated+aggDelta, 0)
	return before, c.willpower
}

// CanReroll reports whether the character has willpower left to spend
// on a reroll.
func (c *Character) CanReroll() bool {
	return c.CurrentWillpower() > 0
}

// SpendReroll marks one superficial willpower damage for a reroll
// action. Returns false without mutating when no willpower remains.
func (c *Character) SpendReroll() bool {
	if !c.CanReroll() {
		return false
	}
	c.ApplyWillpowerDamage(1, 0)
	return true
}

// Attribute returns the named attribute, defaulting when unset.
func (c *Character) Attribute(name string) int {
	if v, ok := c.attributes[name]; ok {
		return v
	}
	return AttributeDefault
}

// Skill returns the named skill, defaulting when unset.
func (c *Character) Skill(name string) int {
	if v, ok := c.skills[name]; ok {
		return v
	}
	return SkillDefault
}

// Discipline returns the named discipline rating, defaulting when unset.
func (c *Character) Discipline(name string) int {
	if v, ok := c.disciplines[name]; ok {
		return v
	}
	return DisciplineDefault
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
