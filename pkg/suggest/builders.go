package suggest

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrInvalidLength is returned for generator lengths outside MinLength..MaxLength.
	ErrInvalidLength = errors.New("password length out of range")
	// ErrNoWords is returned by FromWords when every word is blank.
	ErrNoWords = errors.New("at least one word is required")
)

// Bounds for GeneratePassword.
const (
	MinLength = 4
	MaxLength = 128
)

const (
	upperSet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerSet  = "abcdefghijklmnopqrstuvwxyz"
	symbolSet = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Options selects the character classes of a generated password.
type Options struct {
	Length    int  `json:"length" yaml:"length"`
	Uppercase bool `json:"uppercase" yaml:"uppercase"`
	Lowercase bool `json:"lowercase" yaml:"lowercase"`
	Numbers   bool `json:"numbers" yaml:"numbers"`
	Symbols   bool `json:"symbols" yaml:"symbols"`
}

// DefaultOptions is a 16 character password using every class.
func DefaultOptions() Options {
	return Options{Length: 16, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true}
}

// GeneratePassword builds a random password from the selected classes,
// with at least one character of each. Lowercase is used when no class is
// selected.
func (g *Generator) GeneratePassword(opts Options) (string, error) {
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", ErrInvalidLength
	}

	var sets []string
	if opts.Uppercase {
		sets = append(sets, upperSet)
	}
	if opts.Lowercase {
		sets = append(sets, lowerSet)
	}
	if opts.Numbers {
		sets = append(sets, digits)
	}
	if opts.Symbols {
		sets = append(sets, symbolSet)
	}
	if len(sets) == 0 {
		sets = []string{lowerSet}
	}

	b := make([]byte, 0, opts.Length)
	for _, set := range sets {
		b = g.appendFrom(b, set, 1)
	}
	b = g.appendFrom(b, strings.Join(sets, ""), opts.Length-len(b))
	shuffle(g.rnd, b)
	return string(b), nil
}

var (
	adjectives = []string{"happy", "brave", "clever", "gentle", "mighty", "peaceful", "vibrant", "wild", "ancient", "brilliant", "cosmic", "dazzling"}
	nouns      = []string{"apple", "mountain", "river", "chair", "coffee", "beach", "computer", "piano", "eagle", "diamond", "forest", "ocean"}
	verbs      = []string{"jumps", "flows", "creates", "builds", "flies", "swims", "dances", "sings", "explores", "discovers", "transforms", "illuminates"}
	adverbs    = []string{"quickly", "silently", "boldly", "carefully", "proudly", "smoothly", "gracefully", "fiercely", "endlessly", "magically"}
)

const (
	passphraseSymbols = "!@#$%&*"
	passphraseDigits  = "23456789"
)

// Passphrase returns "adjective noun verb adverb" followed by a symbol or
// digit. Each of the first two words is capitalized at random.
func (g *Generator) Passphrase() string {
	words := []string{
		g.maybeCapitalize(g.pick(adjectives)),
		g.maybeCapitalize(g.pick(nouns)),
		g.pick(verbs),
		g.pick(adverbs),
	}

	tail := passphraseDigits
	if g.rnd.IntN(2) == 0 {
		tail = passphraseSymbols
	}
	return strings.Join(words, " ") + string(tail[g.rnd.IntN(len(tail))])
}

func (g *Generator) maybeCapitalize(w string) string {
	if g.rnd.IntN(2) == 0 {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// FromWords builds a memorable password from one or two of the given words,
// upper-casing every other letter and appending a three-digit number and a
// symbol.
func (g *Generator) FromWords(words []string) (string, error) {
	var pool []string
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return "", ErrNoWords
	}

	shuffle(g.rnd, pool)
	var b strings.Builder
	for _, w := range pool[:min(2, len(pool))] {
		for i, r := range []rune(w) {
			if i%2 == 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		}
	}
	b.WriteString(strconv.Itoa(100 + g.rnd.IntN(900)))
	b.WriteByte(symbols[g.rnd.IntN(len(symbols))])
	return b.String(), nil
}
