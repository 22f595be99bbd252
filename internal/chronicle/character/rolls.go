package character

import "github.com/nocturne-rpg/nocturne/internal/core/dice"

// RouseOutcome reports a rouse check and its hunger effect.
type RouseOutcome struct {
	Roll      int
	Success   bool
	OldHunger int
	NewHunger int
}

// RouseCheck rolls one d10; on failure hunger rises by one, clamped.
func (c *Character) RouseCheck(r dice.Roller) RouseOutcome {
	old := c.hunger
	res := dice.Rouse(r)
	if !res.Success {
		c.SetHunger(old + 1)
	}
	return RouseOutcome{
		Roll:      res.Roll,
		Success:   res.Success,
		OldHunger: old,
		NewHunger: c.hunger,
	}
}

// RemorseOutcome reports a remorse roll and its humanity effect.
type RemorseOutcome struct {
	Pool             int
	BasePool         int
	Rolled           []int
	Successes        int
	Remorse          bool
	PreviousHumanity int
	FinalHumanity    int
	PreviousStains   int
}

// RemorsePool computes the remorse dice pool: 10 minus humanity,
// clamped to [1,10], then one bonus or penalty die per relevant
// merit/flaw tag and up to two bonus dice for living touchstones.
func (c *Character) RemorsePool() (pool, base int) {
	base = clamp(10-c.humanity, 1, 10)
	pool = base

	meritTags := c.MeritTags()
	flawTags := c.FlawTags()
	if meritTags[TagRemorseBonus] {
		pool++
	}
	if meritTags[TagStainSensitivity] {
		pool++
	}
	if flawTags[TagRemorsePenalty] {
		pool--
	}

	switch alive := c.LivingTouchstones(); {
	case alive >= 2:
		pool += 2
	case alive == 1:
		pool++
	}

	return clamp(pool, 1, 10), base
}

// RemorseRoll rolls the remorse pool with plain success counting (no
// hunger dice, no crit pairs). Any success keeps humanity and clears
// stains; none drops humanity by one and clears stains.
func (c *Character) RemorseRoll(r dice.Roller) RemorseOutcome {
	pool, base := c.RemorsePool()

	rolled := make([]int, pool)
	successes := 0
	for i := range rolled {
		rolled[i] = r.D10()
		if rolled[i] >= dice.SuccessThreshold {
			successes++
		}
	}

	out := RemorseOutcome{
		Pool:             pool,
		BasePool:         base,
		Rolled:           rolled,
		Successes:        successes,
		Remorse:          successes > 0,
		PreviousHumanity: c.humanity,
		PreviousStains:   c.stains,
	}

	if !out.Remorse {
		c.SetHumanity(c.humanity - 1)
	}
	c.stains = 0
	out.FinalHumanity = c.humanity
	return out
}
