// Package director holds the city-scale pressure model. Combat, hunting,
// and travel outcomes fold into it as events; the narrative layer reads
// its summary to pick scene severity.
package director

import (
	"fmt"

	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

// Pressure keys.
const (
	PressureMasquerade        = "masquerade"
	PressureViolence          = "violence"
	PressureOccult            = "occult"
	PressureSecondInquisition = "second_inquisition"
	PressurePolitical         = "political"
)

// Theme keys.
const (
	ThemeViolence   = "violence"
	ThemeOccult     = "occult"
	ThemeMasquerade = "masquerade"
	ThemePolitics   = "politics"
	ThemeMystery    = "mystery"
)

// Counter bounds.
const (
	PressureMin = 0
	PressureMax = 20

	ThemeMin     = 0
	ThemeMax     = 10
	ThemeDefault = 5

	AwarenessMin     = 0
	AwarenessMax     = 10
	AwarenessDefault = 1
)

// PressureKeys lists the pressure counters in reporting order.
var PressureKeys = []string{
	PressureMasquerade,
	PressureViolence,
	PressureOccult,
	PressureSecondInquisition,
	PressurePolitical,
}

// ThemeKeys lists the theme weights in reporting order.
var ThemeKeys = []string{
	ThemeViolence,
	ThemeOccult,
	ThemeMasquerade,
	ThemePolitics,
	ThemeMystery,
}

// State is the mutable city pressure model for one chronicle. Counters
// stay inside their documented bounds.
type State struct {
	chronicle string
	awareness int
	pressures map[string]int
	themes    map[string]int
}

// Config carries everything needed to build or restore a State.
// Missing counters fall back to defaults; explicit values are clamped.
type Config struct {
	Chronicle string
	Awareness *int
	Pressures map[string]int
	Themes    map[string]int
}

// New builds a State from config, applying defaults and clamps.
// Unknown pressure or theme keys in the config are dropped.
func New(cfg Config) *State {
	s := &State{
		chronicle: cfg.Chronicle,
		awareness: AwarenessDefault,
		pressures: make(map[string]int, len(PressureKeys)),
		themes:    make(map[string]int, len(ThemeKeys)),
	}
	if cfg.Awareness != nil {
		s.awareness = clamp(*cfg.Awareness, AwarenessMin, AwarenessMax)
	}
	for _, key := range PressureKeys {
		s.pressures[key] = clamp(cfg.Pressures[key], PressureMin, PressureMax)
	}
	for _, key := range ThemeKeys {
		s.themes[key] = ThemeDefault
		if v, ok := cfg.Themes[key]; ok {
			s.themes[key] = clamp(v, ThemeMin, ThemeMax)
		}
	}
	return s
}

// Snapshot returns a Config that rebuilds this state via New.
func (s *State) Snapshot() Config {
	awareness := s.awareness
	cfg := Config{
		Chronicle: s.chronicle,
		Awareness: &awareness,
		Pressures: make(map[string]int, len(s.pressures)),
		Themes:    make(map[string]int, len(s.themes)),
	}
	for k, v := range s.pressures {
		cfg.Pressures[k] = v
	}
	for k, v := range s.themes {
		cfg.Themes[k] = v
	}
	return cfg
}

// Chronicle returns the chronicle this state belongs to.
func (s *State) Chronicle() string { return s.chronicle }

// Awareness returns how awake the city is to trouble.
func (s *State) Awareness() int { return s.awareness }

// AdjustAwareness shifts awareness and clamps it into range.
func (s *State) AdjustAwareness(delta int) (before, after int) {
	before = s.awareness
	s.awareness = clamp(s.awareness+delta, AwarenessMin, AwarenessMax)
	return before, s.awareness
}

// Pressure returns one pressure counter.
func (s *State) Pressure(key string) (int, error) {
	v, ok := s.pressures[key]
	if !ok {
		return 0, errors.WithMetadata(errors.CodePressureKeyUnknown,
			fmt.Sprintf("unknown pressure key %q", key),
			map[string]string{"key": key})
	}
	return v, nil
}

// Adjust shifts one pressure counter and clamps it into range.
func (s *State) Adjust(key string, delta int) (before, after int, err error) {
	before, err = s.Pressure(key)
	if err != nil {
		return 0, 0, err
	}
	s.pressures[key] = clamp(before+delta, PressureMin, PressureMax)
	return before, s.pressures[key], nil
}

// Theme returns one theme weight.
func (s *State) Theme(key string) (int, error) {
	v, ok := s.themes[key]
	if !ok {
		return 0, errors.WithMetadata(errors.CodeThemeKeyUnknown,
			fmt.Sprintf("unknown theme key %q", key),
			map[string]string{"key": key})
	}
	return v, nil
}

// AdjustTheme shifts one theme weight and clamps it into range.
func (s *State) AdjustTheme(key string, delta int) (before, after int, err error) {
	before, err = s.Theme(key)
	if err != nil {
		return 0, 0, err
	}
	s.themes[key] = clamp(before+delta, ThemeMin, ThemeMax)
	return before, s.themes[key], nil
}

// GlobalThreatLevel buckets the summed pressures into a 1..5 band.
func (s *State) GlobalThreatLevel() int {
	total := 0
	for _, v := range s.pressures {
		total += v
	}
	switch {
	case total <= 10:
		return 1
	case total <= 20:
		return 2
	case total <= 30:
		return 3
	case total <= 40:
		return 4
	default:
		return 5
	}
}

// NightTick advances the city by one night: themes cool by one and
// awareness drifts back toward its resting band.
func (s *State) NightTick() {
	for k, v := range s.themes {
		if v > ThemeMin {
			s.themes[k] = v - 1
		}
	}
	switch {
	case s.awareness > 3:
		s.awareness--
	case s.awareness < 1:
		s.awareness++
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
