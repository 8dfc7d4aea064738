package strength

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrackTimeScoreBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, CrackInstant},
		{19, CrackInstant},
		{20, CrackMinutesToHours},
		{39, CrackMinutesToHours},
		{40, CrackDaysToWeeks},
		{59, CrackDaysToWeeks},
		{60, CrackMonthsToYears},
		{79, CrackMonthsToYears},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, crackTime("Ab1!Ab1!Ab1!", tt.score), "score %d", tt.score)
	}
}

func TestBruteForceLabelBoundaries(t *testing.T) {
	thresholds := []struct {
		at           float64
		below, above string
	}{
		{60, CrackSeconds, CrackMinutes},
		{3600, CrackMinutes, CrackHours},
		{86400, CrackHours, CrackDays},
		{2592000, CrackDays, CrackMonths},
		{31536000, CrackMonths, CrackYears},
		{315360000, CrackYears, CrackCenturies},
		{3153600000, CrackCenturies, CrackMillionsOfYears},
	}
	for _, th := range thresholds {
		assert.Equal(t, th.below, BruteForceLabel(math.Nextafter(th.at, 0)), "just under %v", th.at)
		assert.Equal(t, th.above, BruteForceLabel(th.at), "at %v", th.at)
	}
	assert.Equal(t, CrackMillionsOfYears, BruteForceLabel(math.Inf(1)))
}

func TestBruteForceFullCharset(t *testing.T) {
	// "aA1!" carries all four classes: 26+26+10+33 = 95.
	pw := func(n int) string { return strings.Repeat("aA1!", 4)[:n] }

	tests := []struct {
		length int
		want   string
	}{
		{6, CrackSeconds},          // 0.73s
		{7, CrackMinutes},          // 69.8s
		{8, CrackHours},            // 6634s
		{9, CrackDays},             // 6.3e5s
		{10, CrackYears},           // 6.0e7s
		{11, CrackMillionsOfYears}, // 5.7e9s
	}
	for _, tt := range tests {
		p := pw(tt.length)
		assert.InDelta(t, math.Pow(95, float64(tt.length))/1e12, BruteForceSeconds(p), 1e-6, p)
		assert.Equal(t, tt.want, crackTime(p, 85), p)
	}
}

func TestBruteForceCharsetSizes(t *testing.T) {
	assert.Equal(t, 26, classify("abc").charsetSize())
	assert.Equal(t, 52, classify("aB").charsetSize())
	assert.Equal(t, 62, classify("aB3").charsetSize())
	assert.Equal(t, 33, classify("!!").charsetSize())
	assert.Equal(t, 0, classify("").charsetSize())
}
