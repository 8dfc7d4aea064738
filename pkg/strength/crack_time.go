package strength

import "math"

// guessesPerSecond models a high-end offline attacker.
const guessesPerSecond = 1e12

// Crack-time labels.
const (
	CrackInstant         = "Instant"
	CrackMinutesToHours  = "Minutes to hours"
	CrackDaysToWeeks     = "Days to weeks"
	CrackMonthsToYears   = "Months to years"
	CrackSeconds         = "Seconds"
	CrackMinutes         = "Minutes"
	CrackHours           = "Hours"
	CrackDays            = "Days"
	CrackMonths          = "Months"
	CrackYears           = "Years"
	CrackCenturies       = "Centuries"
	CrackMillionsOfYears = "Millions of years+"
)

var crackBuckets = []struct {
	below float64
	label string
}{
	{60, CrackSeconds},
	{3600, CrackMinutes},
	{86400, CrackHours},
	{2592000, CrackDays},
	{31536000, CrackMonths},
	{315360000, CrackYears},
	{3153600000, CrackCenturies},
}

// crackTime labels the time to crack a password. Below a score of 80 the
// label comes from the score alone; above it, from a brute-force estimate.
func crackTime(password string, score int) string {
	switch {
	case score < 20:
		return CrackInstant
	case score < 40:
		return CrackMinutesToHours
	case score < 60:
		return CrackDaysToWeeks
	case score < 80:
		return CrackMonthsToYears
	}
	return BruteForceLabel(BruteForceSeconds(password))
}

// BruteForceSeconds estimates the seconds needed to exhaust the password's
// charset at its length. Very long passwords overflow to +Inf.
func BruteForceSeconds(password string) float64 {
	size := classify(password).charsetSize()
	return math.Pow(float64(size), float64(runeLen(password))) / guessesPerSecond
}

// BruteForceLabel buckets a duration in seconds into a coarse label.
func BruteForceLabel(seconds float64) string {
	for _, b := range crackBuckets {
		if seconds < b.below {
			return b.label
		}
	}
	return CrackMillionsOfYears
}
