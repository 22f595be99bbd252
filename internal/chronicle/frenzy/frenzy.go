// Package frenzy evaluates loss-of-control triggers and resolves the
// self-control test that decides whether a character frenzies.
package frenzy

import (
	"sort"
	"sync"

	"github.com/nocturne-rpg/nocturne/internal/core/dice"
)

// Trigger identifies the event that forces a self-control test.
type Trigger string

const (
	TriggerBestialFailure   Trigger = "bestial_failure"
	TriggerMessyCritical    Trigger = "messy_critical"
	TriggerHungerFour       Trigger = "hunger_4"
	TriggerAggravatedDamage Trigger = "agg_damage"
	TriggerFearFire         Trigger = "fear_fire"
	TriggerFearSun          Trigger = "fear_sun"
)

const (
	// DefaultDifficulty is the baseline success count needed to resist.
	DefaultDifficulty = 3

	// hungerRiskThreshold is the hunger level at which any trigger forces
	// a test.
	hungerRiskThreshold = 4
)

// Subject is the slice of a character or combatant the frenzy rules read
// and mutate.
type Subject interface {
	Name() string
	Hunger() int
	Attribute(name string) int
	Frenzied() bool
	SetFrenzied(v bool)
}

// resistModifier is implemented by subjects whose merits or flaws shift
// the self-control pool.
type resistModifier interface {
	FrenzyResistModifier() int
}

// Result reports a resolved self-control test.
type Result struct {
	Subject    string
	Trigger    Trigger
	Pool       int
	Difficulty int
	Roll       dice.Result
	Frenzied   bool
}

// ShouldTrigger reports whether the trigger forces a self-control test.
// Fear, bestial-failure, messy-critical, and aggravated-damage triggers
// always apply. Any trigger applies once hunger reaches the risk
// threshold.
func ShouldTrigger(t Trigger, s Subject) bool {
	if s.Hunger() >= hungerRiskThreshold {
		return true
	}
	switch t {
	case TriggerFearFire, TriggerFearSun, TriggerMessyCritical,
		TriggerBestialFailure, TriggerAggravatedDamage:
		return true
	}
	return false
}

// Resist rolls Resolve + Composure with the subject's hunger as hunger
// dice and compares raw successes against difficulty. Outcome tags are
// ignored; only the success count matters. Failing the test sets the
// subject's frenzy flag.
func Resist(r dice.Roller, s Subject, trigger Trigger, difficulty int) Result {
	if difficulty <= 0 {
		difficulty = DefaultDifficulty
	}
	pool := s.Attribute("resolve") + s.Attribute("composure")
	if m, ok := s.(resistModifier); ok {
		pool += m.FrenzyResistModifier()
	}
	if pool < 1 {
		pool = 1
	}
	roll := dice.RollPool(r, pool, s.Hunger())
	res := Result{
		Subject:    s.Name(),
		Trigger:    trigger,
		Pool:       pool,
		Difficulty: difficulty,
		Roll:       roll,
	}
	if roll.Successes < difficulty {
		res.Frenzied = true
		s.SetFrenzied(true)
	}
	return res
}

// Ledger tracks which subjects are frenzied and what set them off. Each
// encounter or session owns its own ledger.
type Ledger struct {
	mu     sync.Mutex
	active map[string]Trigger
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{active: make(map[string]Trigger)}
}

// Check runs the full trigger evaluation for a subject. The second
// return is false when the trigger does not force a test.
func (l *Ledger) Check(r dice.Roller, s Subject, trigger Trigger, difficulty int) (Result, bool) {
	if !ShouldTrigger(trigger, s) {
		return Result{}, false
	}
	res := Resist(r, s, trigger, difficulty)
	if res.Frenzied {
		l.mu.Lock()
		l.active[s.Name()] = trigger
		l.mu.Unlock()
	}
	return res, true
}

// Clear removes the subject's frenzy state without a roll. It reports
// whether the subject was frenzied.
func (l *Ledger) Clear(s Subject) bool {
	was := s.Frenzied()
	s.SetFrenzied(false)
	l.mu.Lock()
	if _, ok := l.active[s.Name()]; ok {
		was = true
		delete(l.active, s.Name())
	}
	l.mu.Unlock()
	return was
}

// Frenzied reports whether the named subject is marked in the ledger.
func (l *Ledger) Frenzied(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.active[name]
	return ok
}

// Cause returns the trigger recorded for a frenzied subject.
func (l *Ledger) Cause(name string) (Trigger, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.active[name]
	return t, ok
}

// Active returns the frenzied subject names in sorted order.
func (l *Ledger) Active() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.active))
	for name := range l.active {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
