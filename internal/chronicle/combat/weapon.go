package combat

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

//go:embed weapons.yaml
var defaultWeaponsYAML []byte

// Weapon classes.
const (
	WeaponBrawl  = "brawl"
	WeaponMelee  = "melee"
	WeaponRanged = "ranged"
)

// RangeBand is the distance between attacker and target.
type RangeBand string

const (
	RangeClose  RangeBand = "close"
	RangeShort  RangeBand = "short"
	RangeMedium RangeBand = "medium"
	RangeLong   RangeBand = "long"
)

// Cover is the defender's cover level against ranged attacks.
type Cover string

const (
	CoverNone  Cover = "none"
	CoverLight Cover = "light"
	CoverHeavy Cover = "heavy"
)

// ParseRangeBand normalizes and validates a range band string. Empty
// input means close range.
func ParseRangeBand(s string) (RangeBand, error) {
	switch RangeBand(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return RangeClose, nil
	case RangeClose:
		return RangeClose, nil
	case RangeShort:
		return RangeShort, nil
	case RangeMedium:
		return RangeMedium, nil
	case RangeLong:
		return RangeLong, nil
	}
	return "", errors.WithMetadata(errors.CodeCombatUnknownRangeBand,
		fmt.Sprintf("unknown range band %q", s),
		map[string]string{"range": s})
}

// ParseCover normalizes and validates a cover level string. Empty input
// means no cover.
func ParseCover(s string) (Cover, error) {
	switch Cover(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return CoverNone, nil
	case CoverNone:
		return CoverNone, nil
	case CoverLight:
		return CoverLight, nil
	case CoverHeavy:
		return CoverHeavy, nil
	}
	return "", errors.WithMetadata(errors.CodeCombatUnknownCoverLevel,
		fmt.Sprintf("unknown cover level %q", s),
		map[string]string{"cover": s})
}

// CoverPenalty returns how many successes the cover level removes.
func CoverPenalty(c Cover) int {
	switch Cover(strings.ToLower(string(c))) {
	case CoverLight:
		return 1
	case CoverHeavy:
		return 2
	default:
		return 0
	}
}

// Weapon describes one catalog entry. Dice is the pool bonus the
// weapon grants; Magazine is 0 for weapons without one.
type Weapon struct {
	Key        string   `yaml:"key"`
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Dice       int      `yaml:"dice"`
	Aggravated bool     `yaml:"aggravated"`
	Magazine   int      `yaml:"magazine"`
	Traits     []string `yaml:"traits"`
}

// Ranged reports whether the weapon attacks at range.
func (w Weapon) Ranged() bool { return w.Type == WeaponRanged }

// HasTrait reports whether the weapon carries the named trait.
func (w Weapon) HasTrait(trait string) bool {
	for _, t := range w.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// AttackPool returns the attribute and skill that drive the weapon's
// dice pool.
func (w Weapon) AttackPool() (attribute, skill string) {
	switch w.Type {
	case WeaponRanged:
		return "dexterity", "firearms"
	case WeaponBrawl:
		return "strength", "brawl"
	default:
		return "strength", "melee"
	}
}

// RangeModifier returns the dice adjustment for firing the weapon at
// the given band. Melee and brawl weapons are unaffected.
func (w Weapon) RangeModifier(band RangeBand) int {
	if !w.Ranged() {
		return 0
	}
	rb := RangeBand(strings.ToLower(string(band)))
	switch rb {
	case RangeClose, RangeShort, RangeMedium, RangeLong:
	default:
		rb = RangeClose
	}

	mod := 0
	if w.HasTrait("scatter") {
		switch rb {
		case RangeClose:
			mod += 2
		case RangeMedium:
			mod -= 2
		case RangeLong:
			mod -= 5
		}
	}
	if w.HasTrait("rifle") {
		switch rb {
		case RangeClose:
			mod -= 2
		case RangeLong:
			mod++
		}
	}
	if w.HasTrait("handgun") && rb == RangeLong {
		mod -= 2
	}
	if w.HasTrait("fire") && rb == RangeClose {
		mod++
	}
	if !w.HasTrait("rifle") && !w.HasTrait("scatter") && rb == RangeLong {
		mod--
	}
	return mod
}

// Arsenal is a keyed weapon catalog.
type Arsenal struct {
	weapons map[string]Weapon
	keys    []string
}

type weaponFile struct {
	Weapons []Weapon `yaml:"weapons"`
}

// NewArsenal parses a YAML weapon catalog.
func NewArsenal(data []byte) (*Arsenal, error) {
	var file weaponFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse weapon catalog: %w", err)
	}
	a := &Arsenal{weapons: make(map[string]Weapon, len(file.Weapons))}
	for _, w := range file.Weapons {
		key := strings.ToLower(w.Key)
		if key == "" {
			return nil, fmt.Errorf("weapon %q has no key", w.Name)
		}
		w.Key = key
		a.weapons[key] = w
	}
	for key := range a.weapons {
		a.keys = append(a.keys, key)
	}
	sort.Strings(a.keys)
	return a, nil
}

// DefaultArsenal loads the embedded weapon catalog.
func DefaultArsenal() (*Arsenal, error) {
	return NewArsenal(defaultWeaponsYAML)
}

// Weapon looks up a catalog entry by key.
func (a *Arsenal) Weapon(key string) (Weapon, error) {
	w, ok := a.weapons[strings.ToLower(key)]
	if !ok {
		return Weapon{}, errors.WithMetadata(errors.CodeWeaponNotFound,
			fmt.Sprintf("unknown weapon %q", key),
			map[string]string{"weapon": key})
	}
	return w, nil
}

// Keys returns the catalog keys in sorted order.
func (a *Arsenal) Keys() []string {
	return append([]string(nil), a.keys...)
}
