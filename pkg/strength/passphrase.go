package strength

import (
	"regexp"
	"strings"
	"unicode"
)

// passphraseMinRunes is exclusive: a passphrase must be longer than this.
const passphraseMinRunes = 15

var wordSeparatedRe = regexp.MustCompile(`[a-z]+[^a-z]+[a-z]+`)

// IsPassphrase reports whether the password reads as several words
// separated by non-letters and is longer than 15 characters.
func IsPassphrase(password string) bool {
	return runeLen(password) > passphraseMinRunes &&
		wordSeparatedRe.MatchString(strings.ToLower(password))
}

func isTokenSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune("-_.,;:!?", r)
}

// SplitWords splits a passphrase on whitespace and -_.,;:!? keeping empty
// tokens, so "a--b" yields three tokens.
func SplitWords(passphrase string) []string {
	var (
		tokens []string
		cur    strings.Builder
	)
	for _, r := range passphrase {
		if isTokenSeparator(r) {
			tokens = append(tokens, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(tokens, cur.String())
}

// Words returns the non-empty tokens of SplitWords.
func Words(passphrase string) []string {
	var out []string
	for _, w := range SplitWords(passphrase) {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func passphraseScore(passphrase string) int {
	if len(SplitWords(passphrase)) < 3 {
		return 60
	}

	unique := make(map[string]struct{})
	for _, w := range Words(passphrase) {
		unique[w] = struct{}{}
	}

	// Half the length, floored: scores are whole numbers.
	score := 70 + 5*len(unique) + min(20, runeLen(passphrase)/2)

	c := classify(passphrase)
	for _, present := range []bool{c.upper, c.digit, hasVisibleSymbol(passphrase)} {
		if present {
			score += 5
		}
	}
	return min(100, score)
}

// PassphraseEvaluation is a verdict on a user-chosen passphrase.
type PassphraseEvaluation struct {
	Strong   bool   `json:"strong"`
	Feedback string `json:"feedback"`
}

// EvaluatePassphrase checks word count, repetition, length and complexity
// of a passphrase, returning the first problem found.
func EvaluatePassphrase(passphrase string) PassphraseEvaluation {
	if strings.TrimSpace(passphrase) == "" {
		return PassphraseEvaluation{Feedback: "Please enter a passphrase to evaluate."}
	}

	words := Words(passphrase)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	c := classify(passphrase)
	switch {
	case len(words) < 4:
		return PassphraseEvaluation{Feedback: "Your passphrase should contain at least 4 words for better security."}
	case len(unique) < len(words):
		return PassphraseEvaluation{Feedback: "Avoid repeating words in your passphrase."}
	case runeLen(passphrase) < passphraseMinRunes:
		return PassphraseEvaluation{Feedback: "Your passphrase is too short. Consider using longer words or more words."}
	case !c.upper && !c.digit && !hasVisibleSymbol(passphrase):
		return PassphraseEvaluation{Feedback: "Consider adding uppercase letters, numbers, or special characters to strengthen your passphrase."}
	}
	return PassphraseEvaluation{
		Strong:   true,
		Feedback: "Great passphrase! It's long, unique, and complex enough to be secure.",
	}
}

// hasVisibleSymbol reports a character outside [A-Za-z0-9] that is not whitespace.
func hasVisibleSymbol(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.IsSpace(r):
		default:
			return true
		}
	}
	return false
}
