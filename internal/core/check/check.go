// Package check provides shared difficulty-check helpers.
package check

// MeetsDifficulty returns true if successes >= difficulty.
func MeetsDifficulty(successes, difficulty int) bool {
	return successes >= difficulty
}

// Margin calculates the margin of success or failure.
// Positive values indicate success, negative indicate failure.
func Margin(successes, difficulty int) int {
	return successes - difficulty
}

// Result represents the outcome of a difficulty check.
type Result struct {
	Success bool
	Margin  int
}

// Check performs a difficulty check and returns the result.
func Check(successes, difficulty int) Result {
	return Result{
		Success: MeetsDifficulty(successes, difficulty),
		Margin:  Margin(successes, difficulty),
	}
}
