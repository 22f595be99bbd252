// Package travel moves characters between zones and rolls street
// encounters on the way.
package travel

import (
	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
)

// Result reports one journey. Encounter is nil when the trip passes
// without incident.
type Result struct {
	Origin      string                  `json:"origin"`
	Destination string                  `json:"destination"`
	Encounter   *zone.Encounter         `json:"encounter,omitempty"`
	Events      []director.OutcomeEvent `json:"events,omitempty"`
}

// Travel moves the character to the destination zone. A street
// encounter triggers when a d10 rolls at or under the destination's
// violence risk; its tags feed the city model. Unknown destinations
// fail before the character moves.
func Travel(r dice.Roller, c *character.Character, registry *zone.Registry, destKey string) (Result, error) {
	dest, err := registry.Get(destKey)
	if err != nil {
		return Result{}, err
	}

	origin := c.Location()
	if origin == "" {
		origin = registry.DefaultZone().Key
	}

	res := Result{Origin: origin, Destination: dest.Key}

	if r.D10() <= dest.Risk.Violence && len(dest.Encounters) > 0 {
		enc := dest.Encounters[(r.D10()-1)%len(dest.Encounters)]
		res.Encounter = &enc
		res.Events = append(res.Events, director.OutcomeEvent{
			Kind:     director.EventStreetEncounter,
			Actor:    c.Name(),
			Zone:     dest.Key,
			Severity: enc.Severity,
			Tags:     enc.Tags,
		})
	}

	c.SetLocation(dest.Key)
	return res, nil
}
