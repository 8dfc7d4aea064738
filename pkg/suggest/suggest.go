// Package suggest derives stronger password candidates from weak ones and
// builds fresh passwords and passphrases.
package suggest

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"

	"github.com/jwalitptl/passmeter/pkg/strength"
)

const (
	letters      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	freshSymbols = "!@#$%^&*()-_=+"
	symbols      = "!@#$%^&*"
	mixedCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

	// minSuggestionRunes is the length a mutated password is padded to.
	minSuggestionRunes = 12
)

var improvementWords = []string{"secure", "protect", "shield", "guard", "defend", "safe"}

// Rand is the randomness a Generator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Strategy names the branch Improve took.
type Strategy string

const (
	StrategyFresh            Strategy = "fresh"
	StrategyPassphraseExtend Strategy = "passphrase_extend"
	StrategyPassphrasePolish Strategy = "passphrase_polish"
	StrategyMutate           Strategy = "mutate"
)

// Suggestion is an improved password and how it was derived.
type Suggestion struct {
	Password string   `json:"suggestion"`
	Strategy Strategy `json:"strategy"`
}

// Generator produces password suggestions. It is safe for concurrent use
// when its Rand is; the default one is.
type Generator struct {
	rnd     Rand
	lexicon *strength.Lexicon
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand injects the randomness source.
func WithRand(r Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rnd = r
		}
	}
}

// WithLexicon sets the lists used to detect personal information in a
// mutated suggestion.
func WithLexicon(l *strength.Lexicon) Option {
	return func(g *Generator) {
		if l != nil {
			g.lexicon = l
		}
	}
}

// New returns a Generator backed by the global math/rand/v2 source.
func New(opts ...Option) *Generator {
	g := &Generator{rnd: globalRand{}}
	for _, opt := range opts {
		opt(g)
	}
	if g.lexicon == nil {
		g.lexicon = strength.DefaultLexicon()
	}
	return g
}

// Suggest returns an improved candidate for password given its score.
func (g *Generator) Suggest(password string, score int) string {
	return g.Improve(password, score).Password
}

// Improve derives a stronger candidate. Empty or very weak passwords are
// replaced outright, passphrases are extended or polished, and anything else
// is mutated as little as possible.
func (g *Generator) Improve(password string, score int) Suggestion {
	switch {
	case password == "" || score < 20:
		return Suggestion{Password: g.fresh(), Strategy: StrategyFresh}
	case strength.IsPassphrase(password):
		tokens := strength.SplitWords(password)
		if len(tokens) < 4 {
			return Suggestion{
				Password: password + " " + g.pick(improvementWords),
				Strategy: StrategyPassphraseExtend,
			}
		}
		return Suggestion{Password: g.polishPassphrase(tokens), Strategy: StrategyPassphrasePolish}
	}
	return Suggestion{Password: g.mutate(password), Strategy: StrategyMutate}
}

// fresh builds 8-10 letters, 2-3 digits and 1-2 symbols, shuffled.
func (g *Generator) fresh() string {
	var b []byte
	b = g.appendFrom(b, letters, 8+g.rnd.IntN(3))
	b = g.appendFrom(b, digits, 2+g.rnd.IntN(2))
	b = g.appendFrom(b, freshSymbols, 1+g.rnd.IntN(2))
	shuffle(g.rnd, b)
	return string(b)
}

func (g *Generator) polishPassphrase(tokens []string) string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if i%2 == 0 && tok != "" {
			r := []rune(tok)
			r[0] = unicode.ToUpper(r[0])
			tok = string(r)
		}
		out[i] = tok
	}
	improved := strings.Join(out, " ")

	if !strings.ContainsAny(improved, digits) {
		improved += " " + strconv.Itoa(g.rnd.IntN(100))
	}
	if !strings.ContainsFunc(improved, isVisibleSymbol) {
		improved += string(symbols[g.rnd.IntN(len(symbols))])
	}
	return improved
}

func (g *Generator) mutate(password string) string {
	r := []rune(password)

	if !containsRuneIn(r, 'A', 'Z') {
		var lower []int
		for i, c := range r {
			if c >= 'a' && c <= 'z' {
				lower = append(lower, i)
			}
		}
		if len(lower) > 0 {
			i := lower[g.rnd.IntN(len(lower))]
			r[i] = unicode.ToUpper(r[i])
		} else {
			at := g.rnd.IntN(len(r) + 1)
			upper := rune('A' + g.rnd.IntN(26))
			r = append(r[:at], append([]rune{upper}, r[at:]...)...)
		}
	}
	if !containsRuneIn(r, '0', '9') {
		r = append(r, rune('0'+g.rnd.IntN(10)))
	}
	if !hasNonAlnum(r) {
		r = append(r, rune(symbols[g.rnd.IntN(len(symbols))]))
	}
	for len(r) < minSuggestionRunes {
		r = append(r, rune(mixedCharset[g.rnd.IntN(len(mixedCharset))]))
	}

	if g.lexicon.ContainsPersonalInfo(string(r)) {
		shuffle(g.rnd, r)
	}
	return string(r)
}

func (g *Generator) pick(words []string) string {
	return words[g.rnd.IntN(len(words))]
}

func (g *Generator) appendFrom(b []byte, charset string, n int) []byte {
	for range n {
		b = append(b, charset[g.rnd.IntN(len(charset))])
	}
	return b
}

// shuffle is a Fisher-Yates shuffle driven by rnd.
func shuffle[T any](rnd Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func containsRuneIn(r []rune, lo, hi rune) bool {
	for _, c := range r {
		if c >= lo && c <= hi {
			return true
		}
	}
	return false
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func hasNonAlnum(r []rune) bool {
	for _, c := range r {
		if !isAlnum(c) {
			return true
		}
	}
	return false
}

func isVisibleSymbol(c rune) bool {
	return !isAlnum(c) && !unicode.IsSpace(c)
}
