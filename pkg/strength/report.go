package strength

import "regexp"

// Label names the strength band of a 0..100 score.
func Label(score int) string {
	switch {
	case score < 25:
		return "Weak"
	case score < 50:
		return "Medium"
	case score < 75:
		return "Good"
	default:
		return "Strong"
	}
}

// AttackEstimate is the crack time for one attack method.
type AttackEstimate struct {
	Method      string `json:"method"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Time        string `json:"time"`
}

var attackMethods = []AttackEstimate{
	{Method: "bruteforce", Name: "Brute Force Attack", Description: "Tries every possible combination of characters."},
	{Method: "dictionary", Name: "Dictionary Attack", Description: "Uses common words and variations."},
	{Method: "hybrid", Name: "Hybrid Attack", Description: "Combines dictionary words with numbers and symbols."},
	{Method: "rainbow", Name: "Rainbow Table Attack", Description: "Uses precomputed hash tables to find matches."},
}

// score floor -> {brute force, other methods}
var attackBands = []struct {
	floor       int
	brute, rest string
}{
	{90, "Millions of years", "Millions of years"},
	{80, "Centuries", "Decades"},
	{70, "Decades", "Years"},
	{60, "Years", "Months"},
	{50, "Months", "Weeks"},
	{40, "Weeks", "Days"},
	{30, "Days", "Hours"},
	{20, "Hours", "Minutes"},
}

// AttackBreakdown estimates the crack time per attack method from a score.
// Brute force is always the slowest method.
func AttackBreakdown(score int) []AttackEstimate {
	out := make([]AttackEstimate, len(attackMethods))
	copy(out, attackMethods)
	for i := range out {
		out[i].Time = "Seconds"
		for _, b := range attackBands {
			if score >= b.floor {
				if out[i].Method == "bruteforce" {
					out[i].Time = b.brute
				} else {
					out[i].Time = b.rest
				}
				break
			}
		}
	}
	return out
}

var detectors = []struct {
	re      *regexp.Regexp
	message string
}{
	{regexp.MustCompile(`^[a-z]+$`), "Only lowercase letters"},
	{regexp.MustCompile(`^[A-Z]+$`), "Only uppercase letters"},
	{regexp.MustCompile(`^\d+$`), "Only numbers"},
	{regexp.MustCompile(`(?i)password`), "Contains 'password'"},
	{regexp.MustCompile(`123`), "Common sequence (123)"},
	{regexp.MustCompile(`(?i)qwerty`), "Common keyboard sequence (qwerty)"},
	{regexp.MustCompile(`(?i)asdf`), "Common keyboard pattern (asdf)"},
}

// DetectPatterns lists recognizable weaknesses in the password, in a fixed order.
func DetectPatterns(password string) []string {
	if password == "" {
		return nil
	}
	var found []string
	if runeLen(password) < 8 {
		found = append(found, "Short password (less than 8 characters)")
	}
	for _, d := range detectors {
		if d.re.MatchString(password) {
			found = append(found, d.message)
		}
	}
	if c := classify(password); !c.upper || !c.lower {
		found = append(found, "No mixed case")
	}
	return found
}
