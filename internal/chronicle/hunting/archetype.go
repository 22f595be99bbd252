// Package hunting resolves feeding attempts against zone context and
// predator-archetype modifiers.
package hunting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

// Archetype is a predator archetype's hunting profile. ZoneBonuses map
// zone tags to flat dice bonuses. When FloorSource is set, feeding from
// that source cannot reduce hunger below Floor.
type Archetype struct {
	Key         string
	Name        string
	BestSource  string
	ZoneBonuses map[string]int
	FloorSource string
	Floor       int

	// SourceTags restricts BestSource to zones carrying one of these
	// tags; elsewhere the hunt falls back to human prey. Empty means
	// the source is available anywhere.
	SourceTags []string

	// MortalMealCap limits how much a non-vampire meal satisfies.
	// Zero means no cap.
	MortalMealCap int
}

// SourceIn decides what the archetype feeds on in a zone.
func (a Archetype) SourceIn(z zone.Zone) string {
	if len(a.SourceTags) == 0 {
		return a.BestSource
	}
	for _, tag := range a.SourceTags {
		if z.HasTag(tag) {
			return a.BestSource
		}
	}
	return director.SourceHuman
}

var archetypes = map[string]Archetype{
	"alleycat": {
		Key:        "alleycat",
		Name:       "Alleycat",
		BestSource: director.SourceHuman,
		ZoneBonuses: map[string]int{
			"high-violence": 2,
		},
	},
	"bagger": {
		Key:        "bagger",
		Name:       "Bagger",
		BestSource: director.SourceBagged,
		ZoneBonuses: map[string]int{
			"hospital": 1,
		},
		FloorSource: director.SourceBagged,
		Floor:       2,
	},
	"blood_leech": {
		Key:           "blood_leech",
		Name:          "Blood Leech",
		BestSource:    director.SourceVampire,
		SourceTags:    []string{"elysium", "occult"},
		MortalMealCap: 1,
	},
	"cleaver": {
		Key:        "cleaver",
		Name:       "Cleaver",
		BestSource: director.SourceHuman,
		ZoneBonuses: map[string]int{
			"suburb": 1,
		},
	},
	"consensualist": {
		Key:        "consensualist",
		Name:       "Consensualist",
		BestSource: director.SourceHuman,
	},
	"extortionist": {
		Key:        "extortionist",
		Name:       "Extortionist",
		BestSource: director.SourceHuman,
		ZoneBonuses: map[string]int{
			"political": 1,
		},
	},
	"farmer": {
		Key:        "farmer",
		Name:       "Farmer",
		BestSource: director.SourceAnimal,
		ZoneBonuses: map[string]int{
			"rural":    1,
			"farmland": 1,
		},
		FloorSource: director.SourceAnimal,
		Floor:       2,
	},
	"graverobber": {
		Key:        "graverobber",
		Name:       "Graverobber",
		BestSource: director.SourceBagged,
		ZoneBonuses: map[string]int{
			"graveyard": 1,
			"hospital":  1,
		},
		FloorSource: director.SourceBagged,
		Floor:       3,
	},
	"osiris": {
		Key:        "osiris",
		Name:       "Osiris",
		BestSource: director.SourceHuman,
		ZoneBonuses: map[string]int{
			"club": 1,
		},
	},
	"sandman": {
		Key:        "sandman",
		Name:       "Sandman",
		BestSource: director.SourceHuman,
		ZoneBonuses: map[string]int{
			"suburb":      1,
			"residential": 1,
		},
	},
	"scene_queen": {
		Key:        "scene_queen",
		Name:       "Scene Queen",
		BestSource: director.SourceHuman,
		ZoneBonuses: map[string]int{
			"club": 1,
		},
	},
	"siren": {
		Key:        "siren",
		Name:       "Siren",
		BestSource: director.SourceHuman,
		ZoneBonuses: map[string]int{
			"club":    1,
			"elysium": 1,
		},
	},
}

// generic is used for characters without a predator archetype.
var generic = Archetype{Key: "", Name: "Kindred", BestSource: director.SourceHuman}

// Lookup returns the archetype for a predator key. An empty key yields
// a neutral profile.
func Lookup(key string) (Archetype, error) {
	if key == "" {
		return generic, nil
	}
	a, ok := archetypes[strings.ToLower(key)]
	if !ok {
		return Archetype{}, errors.WithMetadata(errors.CodePredatorArchetypeNotFound,
			fmt.Sprintf("unknown predator archetype %q", key),
			map[string]string{"archetype": key})
	}
	return a, nil
}

// Keys returns the known archetype keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(archetypes))
	for k := range archetypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
