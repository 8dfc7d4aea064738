package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "Weak", Label(0))
	assert.Equal(t, "Weak", Label(24))
	assert.Equal(t, "Medium", Label(25))
	assert.Equal(t, "Good", Label(50))
	assert.Equal(t, "Good", Label(74))
	assert.Equal(t, "Strong", Label(75))
	assert.Equal(t, "Strong", Label(100))
}

func TestAttackBreakdown(t *testing.T) {
	times := func(score int) map[string]string {
		out := map[string]string{}
		for _, e := range AttackBreakdown(score) {
			out[e.Method] = e.Time
		}
		return out
	}

	assert.Equal(t, map[string]string{
		"bruteforce": "Centuries", "dictionary": "Decades", "hybrid": "Decades", "rainbow": "Decades",
	}, times(85))
	assert.Equal(t, "Millions of years", times(90)["dictionary"])
	assert.Equal(t, "Hours", times(20)["bruteforce"])
	assert.Equal(t, "Minutes", times(20)["rainbow"])
	assert.Equal(t, "Seconds", times(19)["bruteforce"])
	assert.Equal(t, "Seconds", times(0)["hybrid"])
}

func TestAttackBreakdownDoesNotShareState(t *testing.T) {
	first := AttackBreakdown(95)
	first[0].Time = "changed"

	assert.Equal(t, "Seconds", AttackBreakdown(0)[0].Time)
	assert.Empty(t, attackMethods[0].Time)
}

func TestDetectPatterns(t *testing.T) {
	assert.Nil(t, DetectPatterns(""))

	assert.Equal(t, []string{
		"Only lowercase letters",
		"Contains 'password'",
		"No mixed case",
	}, DetectPatterns("password"))

	assert.Equal(t, []string{
		"Short password (less than 8 characters)",
		"Only numbers",
		"Common sequence (123)",
		"No mixed case",
	}, DetectPatterns("12345"))

	assert.Equal(t, []string{
		"Common keyboard sequence (qwerty)",
		"Common keyboard pattern (asdf)",
	}, DetectPatterns("QwertyAsdf!9"))

	assert.Empty(t, DetectPatterns("Zebra!Quill9"))
}
