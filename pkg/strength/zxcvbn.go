package strength

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nbutton23/zxcvbn-go"
	"github.com/nbutton23/zxcvbn-go/match"
)

// maxEstimatedRunes bounds the input handed to zxcvbn. Its matcher slows down
// sharply on long inputs, so only the leading runes are estimated.
const maxEstimatedRunes = 50

const extraWordSuggestion = "Add another word or two. Uncommon words are better."

// ZxcvbnEstimator is the default Estimator, backed by zxcvbn-go.
type ZxcvbnEstimator struct {
	// UserInputs are extra dictionary words (site name, user name, ...)
	// penalized by the matcher.
	UserInputs []string
}

// NewZxcvbnEstimator returns an estimator penalizing the given user inputs.
func NewZxcvbnEstimator(userInputs ...string) *ZxcvbnEstimator {
	return &ZxcvbnEstimator{UserInputs: userInputs}
}

// Estimate scores the password and derives zxcvbn-style feedback from the
// longest matched pattern.
func (z *ZxcvbnEstimator) Estimate(password string) (est Estimate) {
	// zxcvbn-go has indexed past the end of some non-ASCII inputs; score those as 0.
	defer func() {
		if recover() != nil {
			est = Estimate{}
		}
	}()

	if password == "" {
		return Estimate{
			Suggestions: []string{
				"Use a few words, avoid common phrases",
				"No need for symbols, digits, or uppercase letters",
			},
		}
	}

	password = truncateRunes(password, maxEstimatedRunes)

	// The matcher works on bytes, so repeats and sequences of multi-byte
	// runes read as random. Check them rune by rune instead.
	if !isASCII(password) {
		syms := symbols(password)
		if run, ok := longestRuneRun(syms); ok {
			whole := run.I == 0 && run.J == len(syms)-1
			warning, suggestions := matchFeedback(run, whole)
			est = Estimate{
				Warning:     warning,
				Suggestions: append([]string{extraWordSuggestion}, suggestions...),
			}
			if !whole {
				est.Score = min(1, clampBaseline(zxcvbn.PasswordStrength(password, z.UserInputs).Score))
			}
			return est
		}
	}

	result := zxcvbn.PasswordStrength(password, z.UserInputs)
	est = Estimate{Score: clampBaseline(result.Score)}
	if est.Score > 2 || len(result.MatchSequence) == 0 {
		return est
	}

	longest := result.MatchSequence[0]
	for _, m := range result.MatchSequence[1:] {
		if len(m.Token) > len(longest.Token) {
			longest = m
		}
	}

	warning, suggestions := matchFeedback(longest, len(result.MatchSequence) == 1)
	est.Warning = warning
	est.Suggestions = append([]string{extraWordSuggestion}, suggestions...)
	return est
}

func matchFeedback(m match.Match, sole bool) (string, []string) {
	switch m.Pattern {
	case "dictionary":
		return dictionaryFeedback(m, sole)
	case "spatial":
		return "Short keyboard patterns are easy to guess",
			[]string{"Use a longer keyboard pattern with more turns"}
	case "repeat":
		if isSingleRuneRepeat(m.Token) {
			return `Repeats like "aaa" are easy to guess`,
				[]string{"Avoid repeated words and characters"}
		}
		return `Repeats like "abcabcabc" are only slightly harder to guess than "abc"`,
			[]string{"Avoid repeated words and characters"}
	case "sequence":
		return "Sequences like abc or 6543 are easy to guess",
			[]string{"Avoid sequences"}
	case "date":
		return "Dates are often easy to guess",
			[]string{"Avoid dates and years that are associated with you"}
	}
	return "", nil
}

func dictionaryFeedback(m match.Match, sole bool) (string, []string) {
	var warning string
	dict := strings.ToLower(m.DictionaryName)
	switch {
	case strings.Contains(dict, "password"):
		if sole {
			warning = "This is a very common password"
		} else {
			warning = "This is similar to a commonly used password"
		}
	case strings.Contains(dict, "english"):
		if sole {
			warning = "A word by itself is easy to guess"
		}
	case strings.Contains(dict, "name"):
		if sole {
			warning = "Names and surnames by themselves are easy to guess"
		} else {
			warning = "Common names and surnames are easy to guess"
		}
	}

	var suggestions []string
	token := []rune(m.Token)
	switch {
	case len(token) > 1 && unicode.IsUpper(token[0]) && strings.ToLower(string(token[1:])) == string(token[1:]):
		suggestions = append(suggestions, "Capitalization doesn't help very much")
	case strings.ToUpper(m.Token) == m.Token && strings.ToLower(m.Token) != m.Token:
		suggestions = append(suggestions, "All-uppercase is almost as easy to guess as all-lowercase")
	}
	if strings.ContainsAny(m.Token, "0134578$@") {
		suggestions = append(suggestions, "Predictable substitutions like '@' instead of 'a' don't help very much")
	}
	return warning, suggestions
}

func isSingleRuneRepeat(token string) bool {
	var first rune
	for i, r := range token {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return false
		}
	}
	return true
}

// truncateRunes keeps the first n runes of s, counting each invalid byte
// as one.
func truncateRunes(s string, n int) string {
	i := 0
	for k := 0; k < n && i < len(s); k++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// longestRuneRun finds the longest stretch of one repeated rune, or of
// consecutive code points in either direction. Invalid bytes from symbols
// never join a run. It reports a run only when
// it is at least three runes long and covers half the password or more.
func longestRuneRun(runes []rune) (match.Match, bool) {
	var best match.Match
	bestLen := 0

	start := 0
	for start < len(runes) {
		end := start + 1
		step := rune(0)
		if end < len(runes) {
			step = runes[end] - runes[start]
		}
		if runes[start] < 0 || step < -1 || step > 1 {
			start++
			continue
		}
		for end < len(runes) && runes[end] >= 0 && runes[end]-runes[end-1] == step {
			end++
		}
		if n := end - start; n > bestLen {
			bestLen = n
			pattern := "sequence"
			if step == 0 {
				pattern = "repeat"
			}
			best = match.Match{Pattern: pattern, Token: string(runes[start:end]), I: start, J: end - 1}
		}
		start = max(start+1, end-1)
	}

	if bestLen < 3 || 2*bestLen < len(runes) {
		return match.Match{}, false
	}
	return best, true
}
