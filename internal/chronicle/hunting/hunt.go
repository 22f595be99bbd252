package hunting

import (
	"fmt"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/character"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/zone"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

const basePool = 3

// Result is the full breakdown of one hunt.
type Result struct {
	Zone         string                  `json:"zone"`
	Archetype    string                  `json:"archetype,omitempty"`
	Pool         int                     `json:"pool"`
	Difficulty   int                     `json:"difficulty"`
	Roll         dice.Result             `json:"roll"`
	Source       string                  `json:"source"`
	Amount       int                     `json:"amount"`
	HungerBefore int                     `json:"hunger_before"`
	HungerAfter  int                     `json:"hunger_after"`
	Notes        []string                `json:"notes,omitempty"`
	Events       []director.OutcomeEvent `json:"events,omitempty"`
}

// Hunt resolves a feeding attempt in a zone and applies the result to
// the character's hunger. Unknown predator keys fail before any state
// changes.
func Hunt(r dice.Roller, c *character.Character, z zone.Zone) (Result, error) {
	arch, err := Lookup(c.PredatorKey())
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Zone:         z.Key,
		Archetype:    arch.Key,
		HungerBefore: c.Hunger(),
	}

	pool := basePool
	switch {
	case z.Danger >= 4:
		pool++
		res.Notes = append(res.Notes, "hostile domain sharpens the hunt")
	case z.Danger <= 2:
		pool--
		res.Notes = append(res.Notes, "thin pickings on safe streets")
	}
	if z.HasTag("rack") {
		pool++
		res.Notes = append(res.Notes, "easy prey on the Rack")
	}
	for tag, bonus := range arch.ZoneBonuses {
		if z.HasTag(tag) {
			pool += bonus
			res.Notes = append(res.Notes, fmt.Sprintf("%s hunting ground (+%d)", arch.Name, bonus))
		}
	}
	if pool < 1 {
		pool = 1
	}

	res.Pool = pool
	res.Difficulty = max(2, z.Danger)
	res.Roll = dice.RollPool(r, pool, c.Hunger())
	res.Source = arch.SourceIn(z)
	res.Amount = feedAmount(res.Roll, res.Difficulty)

	if arch.MortalMealCap > 0 && res.Source != director.SourceVampire && res.Amount > arch.MortalMealCap {
		res.Amount = arch.MortalMealCap
		res.Notes = append(res.Notes, "mortal blood barely answers the craving")
	}

	feeding := ApplyFeeding(c, arch, res.Source, res.Amount)
	res.HungerAfter = feeding.HungerAfter
	res.Notes = append(res.Notes, feeding.Notes...)
	res.Events = huntEvents(res)
	return res, nil
}

// feedAmount maps a hunt roll to a feeding tier: zero below the
// difficulty, one on exactly meeting it, two on a clean success, three
// on any crit pair.
func feedAmount(roll dice.Result, difficulty int) int {
	switch {
	case roll.Successes < difficulty:
		return 0
	case roll.CritPairs > 0:
		return 3
	case roll.Successes == difficulty:
		return 1
	default:
		return 2
	}
}

// FeedingResult reports a hunger change from feeding.
type FeedingResult struct {
	Source       string   `json:"source"`
	Amount       int      `json:"amount"`
	HungerBefore int      `json:"hunger_before"`
	HungerAfter  int      `json:"hunger_after"`
	Notes        []string `json:"notes,omitempty"`
}

// ApplyFeeding reduces hunger by amount, then re-raises it to the
// archetype's floor when the source is the archetype's thin one.
func ApplyFeeding(c *character.Character, arch Archetype, source string, amount int) FeedingResult {
	res := FeedingResult{
		Source:       source,
		Amount:       amount,
		HungerBefore: c.Hunger(),
	}
	target := res.HungerBefore - amount
	if target < character.HungerMin {
		target = character.HungerMin
	}
	if arch.FloorSource != "" && source == arch.FloorSource && target < arch.Floor {
		target = arch.Floor
		res.Notes = append(res.Notes,
			fmt.Sprintf("%s blood is thin; hunger stays at %d", source, arch.Floor))
	}
	_, after := c.SetHunger(target)
	res.HungerAfter = after
	return res
}

// Feed applies a manual feeding with a caller-chosen source, for
// feedings resolved outside a hunt roll. The source must be one of the
// director source kinds; negative amounts are treated as zero.
func Feed(c *character.Character, arch Archetype, source string, amount int) (FeedingResult, error) {
	switch source {
	case director.SourceHuman, director.SourceAnimal,
		director.SourceBagged, director.SourceVampire:
	default:
		return FeedingResult{}, errors.WithMetadata(errors.CodeFeedingSourceInvalid,
			fmt.Sprintf("unknown feeding source %q", source),
			map[string]string{"source": source})
	}
	if amount < 0 {
		amount = 0
	}
	return ApplyFeeding(c, arch, source, amount), nil
}

func huntEvents(res Result) []director.OutcomeEvent {
	var events []director.OutcomeEvent
	if res.Amount > 0 {
		events = append(events, director.OutcomeEvent{
			Kind:   director.EventFeeding,
			Source: res.Source,
			Zone:   res.Zone,
		})
	}
	switch res.Roll.Outcome {
	case dice.OutcomeMessyCritical:
		events = append(events, director.OutcomeEvent{Kind: director.EventMessyCritical, Zone: res.Zone})
	case dice.OutcomeBestialSuccess:
		events = append(events, director.OutcomeEvent{Kind: director.EventBestialSuccess, Zone: res.Zone})
	case dice.OutcomeBestialFailure:
		events = append(events, director.OutcomeEvent{Kind: director.EventBestialFailure, Zone: res.Zone})
	}
	return events
}
