package director

// Severity labels in ascending order.
const (
	SeverityLow         = "low"
	SeverityGuarded     = "guarded"
	SeverityTense       = "tense"
	SeverityCritical    = "critical"
	SeverityApocalyptic = "apocalyptic"
)

// Summary is the read surface exposed to the narrative layer. It is a
// plain value and carries no behavior.
type Summary struct {
	Chronicle   string         `json:"chronicle"`
	Awareness   int            `json:"awareness"`
	Pressures   map[string]int `json:"pressures"`
	Themes      map[string]int `json:"themes"`
	ThreatLevel int            `json:"threat_level"`
	Severity    string         `json:"severity"`
}

// SeverityLabel maps a 1..5 threat band to its label. Out-of-range
// levels saturate at the ends.
func SeverityLabel(level int) string {
	switch {
	case level <= 1:
		return SeverityLow
	case level == 2:
		return SeverityGuarded
	case level == 3:
		return SeverityTense
	case level == 4:
		return SeverityCritical
	default:
		return SeverityApocalyptic
	}
}

// Summarize snapshots all counters plus the computed threat level.
// A positive riskOverride raises the band before labeling; the higher
// of the two wins.
func (s *State) Summarize(riskOverride int) Summary {
	level := s.GlobalThreatLevel()
	if riskOverride > level {
		level = riskOverride
	}
	if level > 5 {
		level = 5
	}
	sum := Summary{
		Chronicle:   s.chronicle,
		Awareness:   s.awareness,
		Pressures:   make(map[string]int, len(s.pressures)),
		Themes:      make(map[string]int, len(s.themes)),
		ThreatLevel: level,
		Severity:    SeverityLabel(level),
	}
	for k, v := range s.pressures {
		sum.Pressures[k] = v
	}
	for k, v := range s.themes {
		sum.Themes[k] = v
	}
	return sum
}
