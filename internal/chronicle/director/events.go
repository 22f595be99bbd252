package director

import "strings"

// EventKind identifies an outcome reported to the city model.
type EventKind string

const (
	EventMessyCritical    EventKind = "messy_critical"
	EventBestialSuccess   EventKind = "bestial_success"
	EventBestialFailure   EventKind = "bestial_failure"
	EventFrenzy           EventKind = "frenzy"
	EventFeeding          EventKind = "feeding"
	EventMasqueradeBreach EventKind = "masquerade_breach"
	EventStreetEncounter  EventKind = "street_encounter"
)

// Feeding sources carried on EventFeeding.
const (
	SourceHuman   = "human"
	SourceAnimal  = "animal"
	SourceBagged  = "bagged"
	SourceVampire = "vampire"
)

// OutcomeEvent is emitted by the combat, hunting, and travel resolvers
// and folded into the city model by Apply. Producers never touch the
// State directly.
type OutcomeEvent struct {
	Kind     EventKind `json:"kind"`
	Actor    string    `json:"actor,omitempty"`
	Zone     string    `json:"zone,omitempty"`
	Source   string    `json:"source,omitempty"`
	Severity int       `json:"severity,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}

// Apply folds outcome events into the pressure counters. Unknown kinds
// are ignored; every adjustment targets a known key, so the error paths
// of Adjust cannot fire here.
func (s *State) Apply(events ...OutcomeEvent) {
	for _, ev := range events {
		s.applyOne(ev)
	}
}

func (s *State) applyOne(ev OutcomeEvent) {
	switch ev.Kind {
	case EventMessyCritical:
		s.Adjust(PressureViolence, 2)
		s.Adjust(PressureMasquerade, 2)
		s.AdjustTheme(ThemeViolence, 1)
		s.AdjustTheme(ThemeMasquerade, 1)

	case EventBestialSuccess:
		s.Adjust(PressureViolence, 1)
		s.Adjust(PressureMasquerade, 1)
		s.AdjustTheme(ThemeViolence, 1)

	case EventBestialFailure:
		s.Adjust(PressureMasquerade, 1)
		s.AdjustTheme(ThemeMasquerade, 1)

	case EventFrenzy:
		s.Adjust(PressureViolence, 2)
		s.Adjust(PressureMasquerade, 2)
		s.AdjustTheme(ThemeOccult, 1)
		s.AdjustTheme(ThemeMystery, 1)

	case EventFeeding:
		switch ev.Source {
		case SourceHuman:
			s.Adjust(PressureMasquerade, 1)
		case SourceVampire:
			s.Adjust(PressureOccult, 1)
			s.Adjust(PressurePolitical, 1)
		}
		// Animal and bagged feeding leave no trace.

	case EventMasqueradeBreach:
		severity := max(ev.Severity, 1)
		s.Adjust(PressureMasquerade, severity)
		if severity >= 3 {
			s.Adjust(PressureSecondInquisition, severity-2)
		}

	case EventStreetEncounter:
		s.applyEncounterTags(ev)
	}
}

func (s *State) applyEncounterTags(ev OutcomeEvent) {
	if ev.Severity > 0 {
		s.AdjustAwareness(max(1, ev.Severity/2))
	}
	for _, tag := range ev.Tags {
		switch strings.ToLower(tag) {
		case "masquerade":
			s.Adjust(PressureMasquerade, 1)
			s.AdjustTheme(ThemeMasquerade, 1)
		case "occult", "ritual":
			s.Adjust(PressureOccult, 1)
			s.AdjustTheme(ThemeOccult, 1)
		case "violence", "high-violence":
			s.Adjust(PressureViolence, 1)
			s.AdjustTheme(ThemeViolence, 1)
		case "si", "second_inquisition":
			s.Adjust(PressureSecondInquisition, 1)
		case "political", "politics":
			s.Adjust(PressurePolitical, 1)
			s.AdjustTheme(ThemePolitics, 1)
		}
	}
}
