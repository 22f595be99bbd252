package dice

// Outcome classifies a resolved hunger-dice pool.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeFailure
	OutcomeSuccess
	OutcomeBestialSuccess
	OutcomeBestialFailure
	OutcomeMessyCritical
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFailure:
		return "fail"
	case OutcomeSuccess:
		return "success"
	case OutcomeBestialSuccess:
		return "bestial_success"
	case OutcomeBestialFailure:
		return "bestial_failure"
	case OutcomeMessyCritical:
		return "messy_critical"
	default:
		return "unspecified"
	}
}

// Classify resolves the outcome taxonomy for a rolled pool.
//
// The checks apply in priority order:
//
//  1. A crit pair with a hunger die showing 10 is a messy critical.
//  2. Zero successes with a hunger die showing 1 is a bestial failure.
//  3. Any successes with a hunger die showing 1 is a bestial success.
//  4. Zero successes otherwise is a plain failure.
//  5. Anything else is a success.
func Classify(successes, critPairs int, hungerTen, hungerOne bool) Outcome {
	switch {
	case critPairs > 0 && hungerTen:
		return OutcomeMessyCritical
	case successes == 0 && hungerOne:
		return OutcomeBestialFailure
	case hungerOne && successes > 0:
		return OutcomeBestialSuccess
	case successes == 0:
		return OutcomeFailure
	default:
		return OutcomeSuccess
	}
}
