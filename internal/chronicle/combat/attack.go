package combat

import (
	"fmt"

	"github.com/nocturne-rpg/nocturne/internal/chronicle/director"
	"github.com/nocturne-rpg/nocturne/internal/chronicle/frenzy"
	"github.com/nocturne-rpg/nocturne/internal/core/dice"
	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

// DefaultAttackDifficulty applies when the caller passes no difficulty.
const DefaultAttackDifficulty = 2

// AttackInput names the participants and circumstances of one attack.
// Range and Cover are optional; zero values mean close range in the
// open.
type AttackInput struct {
	Attacker   string
	Defender   string
	Weapon     Weapon
	Difficulty int
	Range      RangeBand
	Cover      Cover
}

// DamageReport is the before/after view of one damage application.
type DamageReport struct {
	Aggravated        bool `json:"aggravated"`
	Applied           int  `json:"applied"`
	SuperficialBefore int  `json:"superficial_before"`
	SuperficialAfter  int  `json:"superficial_after"`
	AggravatedBefore  int  `json:"aggravated_before"`
	AggravatedAfter   int  `json:"aggravated_after"`
}

// AttackResult is the full breakdown of one resolved attack.
type AttackResult struct {
	Attacker         string                  `json:"attacker"`
	Defender         string                  `json:"defender"`
	Weapon           string                  `json:"weapon"`
	Pool             int                     `json:"pool"`
	Roll             dice.Result             `json:"roll"`
	NetSuccesses     int                     `json:"net_successes"`
	Damage           int                     `json:"damage"`
	DamageReport     DamageReport            `json:"damage_report"`
	DefenderDefeated bool                    `json:"defender_defeated"`
	AmmoRemaining    int                     `json:"ammo_remaining"` // -1 when not tracked
	FrenzyChecks     []frenzy.Result         `json:"frenzy_checks,omitempty"`
	Events           []director.OutcomeEvent `json:"events,omitempty"`
}

// Attack resolves one attack between two named combatants.
//
// The pool is attribute + skill + weapon dice, adjusted by range and
// discipline bonuses (Potence for melee and brawl, Celerity for
// ranged) and floored at 1. Net successes subtract the defender's
// defense and any cover penalty; damage is net successes minus
// (difficulty - 1), floored at 0, with +1 for a frenzied attacker and
// +1 on a bestial success when the attack connects.
//
// Input errors (unknown names, empty magazine) leave all state
// untouched.
func (e *Encounter) Attack(in AttackInput) (AttackResult, error) {
	if e.phase != PhaseActive {
		return AttackResult{}, errors.New(errors.CodeEncounterNotActive,
			"initiative has not been built")
	}
	if in.Attacker == in.Defender {
		return AttackResult{}, errors.WithMetadata(errors.CodeCombatSelfTarget,
			"combatants cannot attack themselves",
			map[string]string{"combatant": in.Attacker})
	}
	if in.Difficulty < 0 {
		return AttackResult{}, errors.WithMetadata(errors.CodeCombatInvalidDifficulty,
			fmt.Sprintf("difficulty %d is negative", in.Difficulty),
			map[string]string{"difficulty": fmt.Sprintf("%d", in.Difficulty)})
	}
	attacker, err := e.Combatant(in.Attacker)
	if err != nil {
		return AttackResult{}, err
	}
	defender, err := e.Combatant(in.Defender)
	if err != nil {
		return AttackResult{}, err
	}
	difficulty := in.Difficulty
	if difficulty <= 0 {
		difficulty = DefaultAttackDifficulty
	}

	ammo, err := e.useAmmo(attacker.Name(), in.Weapon)
	if err != nil {
		return AttackResult{}, err
	}

	attribute, skill := in.Weapon.AttackPool()
	pool := attacker.Attribute(attribute) + attacker.Skill(skill) + in.Weapon.Dice
	pool += in.Weapon.RangeModifier(in.Range)
	if in.Weapon.Ranged() {
		pool += attacker.Discipline("celerity")
	} else {
		pool += attacker.Discipline("potence")
	}
	if pool < 1 {
		pool = 1
	}

	roll := dice.RollPool(e.roller, pool, attacker.Hunger())

	net := roll.Successes - defender.Defense() - CoverPenalty(in.Cover)
	damage := max(0, net-(difficulty-1))
	hit := roll.Successes > 0 && net > 0
	if hit {
		if attacker.Frenzied() {
			damage++
		}
		if roll.Outcome == dice.OutcomeBestialSuccess {
			damage++
		}
	} else {
		damage = 0
	}

	report := applyDamage(defender, damage, in.Weapon.Aggravated)

	res := AttackResult{
		Attacker:         attacker.Name(),
		Defender:         defender.Name(),
		Weapon:           in.Weapon.Key,
		Pool:             pool,
		Roll:             roll,
		NetSuccesses:     net,
		Damage:           damage,
		DamageReport:     report,
		DefenderDefeated: defender.IsDefeated(),
		AmmoRemaining:    ammo,
	}

	switch roll.Outcome {
	case dice.OutcomeMessyCritical:
		res.Events = append(res.Events, director.OutcomeEvent{
			Kind:  director.EventMessyCritical,
			Actor: attacker.Name(),
		})
	case dice.OutcomeBestialSuccess:
		res.Events = append(res.Events, director.OutcomeEvent{
			Kind:  director.EventBestialSuccess,
			Actor: attacker.Name(),
		})
	case dice.OutcomeBestialFailure:
		res.Events = append(res.Events, director.OutcomeEvent{
			Kind:  director.EventBestialFailure,
			Actor: attacker.Name(),
		})
	}

	e.checkAttackFrenzy(&res, attacker, defender, roll, report)
	return res, nil
}

// checkAttackFrenzy runs the post-attack frenzy triggers: the
// attacker's own bestial failure or messy critical, and aggravated
// damage actually landing on a vampire defender.
func (e *Encounter) checkAttackFrenzy(res *AttackResult, attacker, defender *Combatant, roll dice.Result, report DamageReport) {
	var trigger frenzy.Trigger
	switch roll.Outcome {
	case dice.OutcomeBestialFailure:
		trigger = frenzy.TriggerBestialFailure
	case dice.OutcomeMessyCritical:
		trigger = frenzy.TriggerMessyCritical
	}
	if trigger != "" && attacker.IsVampire() {
		if check, ok := e.ledger.Check(e.roller, attacker, trigger, 0); ok {
			res.FrenzyChecks = append(res.FrenzyChecks, check)
			if check.Frenzied {
				res.Events = append(res.Events, director.OutcomeEvent{
					Kind:  director.EventFrenzy,
					Actor: attacker.Name(),
				})
			}
		}
	}

	if report.Aggravated && report.Applied > 0 && defender.IsVampire() {
		if check, ok := e.ledger.Check(e.roller, defender, frenzy.TriggerAggravatedDamage, 0); ok {
			res.FrenzyChecks = append(res.FrenzyChecks, check)
			if check.Frenzied {
				res.Events = append(res.Events, director.OutcomeEvent{
					Kind:  director.EventFrenzy,
					Actor: defender.Name(),
				})
			}
		}
	}
}

// applyDamage applies an amount to the target's damage track.
//
// Fortitude soaks first. Vampires halve non-aggravated damage rounding
// up; non-vampires take everything as aggravated. The track caps at
// max health and discards the excess.
func applyDamage(target *Combatant, amount int, aggravated bool) DamageReport {
	report := DamageReport{
		Aggravated:        aggravated || !target.isVampire,
		SuperficialBefore: target.hpSuperficial,
		AggravatedBefore:  target.hpAggravated,
	}

	amount -= target.fortitude
	if amount < 0 {
		amount = 0
	}
	if !report.Aggravated {
		amount = (amount + 1) / 2
	}

	capacity := target.maxHealth - target.hpSuperficial - target.hpAggravated
	if capacity < 0 {
		capacity = 0
	}
	applied := min(amount, capacity)
	if report.Aggravated {
		target.hpAggravated += applied
	} else {
		target.hpSuperficial += applied
	}

	report.Applied = applied
	report.SuperficialAfter = target.hpSuperficial
	report.AggravatedAfter = target.hpAggravated
	return report
}
