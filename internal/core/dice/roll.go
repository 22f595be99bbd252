// Package dice implements the hunger-aware d10 pool resolver.
//
// A pool splits into normal dice and hunger dice. Dice at 6 or higher
// succeed; every pooled pair of tens adds two bonus successes. Hunger
// dice extend the taxonomy with messy criticals and bestial outcomes.
package dice

import "math/rand"

const (
	// SuccessThreshold is the minimum die value that counts as a success.
	SuccessThreshold = 6
	// CritValue is the die value that can pair up into bonus successes.
	CritValue = 10
	// BestialValue is the hunger die value that taints an outcome.
	BestialValue = 1
)

// Roller produces individual ten-sided die results.
type Roller interface {
	D10() int
}

type randRoller struct {
	rng *rand.Rand
}

func (r *randRoller) D10() int {
	return r.rng.Intn(10) + 1
}

// NewRoller returns a Roller seeded for deterministic replay.
// The same seed always produces the same sequence of dice.
func NewRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRollerFromRand wraps an existing random source.
func NewRollerFromRand(rng *rand.Rand) Roller {
	return &randRoller{rng: rng}
}

// Result captures a resolved pool. It is a value type and is never
// mutated after RollPool returns it.
type Result struct {
	Pool       int
	Hunger     int
	Normal     []int
	HungerDice []int
	Successes  int
	CritPairs  int
	Outcome    Outcome
	Chaos      string // bestial-success complication, cosmetic only
}

// RollPool rolls a pool of d10s split into normal and hunger dice.
//
// # Determinism
//
// RollPool consumes exactly pool dice from the Roller, normal dice
// first, then hunger dice, then one extra die only when the outcome is
// a bestial success (to pick the chaos complication). Given the same
// Roller state and arguments it always produces the same Result.
//
// # Clamping
//
// A negative pool is treated as zero. Hunger is clamped to [0, pool];
// the remaining dice are normal dice.
//
// # Successes
//
// Each die at SuccessThreshold or above counts one success. Tens are
// pooled across normal and hunger dice; every pair adds two bonus
// successes regardless of which dice produced them.
func RollPool(r Roller, pool, hunger int) Result {
	if pool < 0 {
		pool = 0
	}
	if hunger < 0 {
		hunger = 0
	}
	if hunger > pool {
		hunger = pool
	}

	normal := make([]int, pool-hunger)
	for i := range normal {
		normal[i] = r.D10()
	}
	hungerDice := make([]int, hunger)
	for i := range hungerDice {
		hungerDice[i] = r.D10()
	}

	successes := 0
	tens := 0
	for _, d := range normal {
		if d >= SuccessThreshold {
			successes++
		}
		if d == CritValue {
			tens++
		}
	}
	hungerTen := false
	hungerOne := false
	for _, d := range hungerDice {
		if d >= SuccessThreshold {
			successes++
		}
		if d == CritValue {
			tens++
			hungerTen = true
		}
		if d == BestialValue {
			hungerOne = true
		}
	}

	critPairs := tens / 2
	successes += critPairs * 2

	outcome := Classify(successes, critPairs, hungerTen, hungerOne)

	chaos := ""
	if outcome == OutcomeBestialSuccess {
		chaos = rollBestialChaos(r)
	}

	return Result{
		Pool:       pool,
		Hunger:     hunger,
		Normal:     normal,
		HungerDice: hungerDice,
		Successes:  successes,
		CritPairs:  critPairs,
		Outcome:    outcome,
		Chaos:      chaos,
	}
}

// RouseResult captures a single-die rouse check.
type RouseResult struct {
	Roll    int
	Success bool
}

// Rouse rolls one d10; values at SuccessThreshold or above succeed.
// On a failure the caller is expected to raise hunger by one.
func Rouse(r Roller) RouseResult {
	roll := r.D10()
	return RouseResult{Roll: roll, Success: roll >= SuccessThreshold}
}
