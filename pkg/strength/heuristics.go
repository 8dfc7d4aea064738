package strength

import (
	"math"
	"strings"
	"unicode/utf8"
)

// charClasses records which ASCII character classes occur in a password.
// Anything that is not an ASCII letter or digit counts as a symbol.
type charClasses struct {
	upper  bool
	lower  bool
	digit  bool
	symbol bool
}

func classify(password string) charClasses {
	var c charClasses
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		default:
			c.symbol = true
		}
	}
	return c
}

// charsetSize is the brute-force alphabet implied by the classes present.
func (c charClasses) charsetSize() int {
	n := 0
	if c.lower {
		n += 26
	}
	if c.upper {
		n += 26
	}
	if c.digit {
		n += 10
	}
	if c.symbol {
		n += 33
	}
	return n
}

var leetReplacer = strings.NewReplacer(
	"0", "o",
	"1", "i",
	"3", "e",
	"4", "a",
	"5", "s",
	"7", "t",
	"8", "b",
	"$", "s",
	"@", "a",
)

// NormalizeLeet lowercases the password and undoes common digit/symbol
// substitutions, e.g. "P@ssw0rd" becomes "password".
func NormalizeLeet(password string) string {
	return leetReplacer.Replace(strings.ToLower(password))
}

// symbols splits s into runes. Each byte of invalid UTF-8 gets its own
// negative value instead of collapsing into utf8.RuneError.
func symbols(s string) []rune {
	out := make([]rune, 0, len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			r = -1 - rune(s[0])
		}
		out = append(out, r)
		s = s[size:]
	}
	return out
}

// hasTripleRepeat reports whether any rune occurs three or more times in a row.
func hasTripleRepeat(password string) bool {
	var prev rune
	run := 0
	for _, r := range symbols(password) {
		if run > 0 && r == prev {
			run++
			if run >= 3 {
				return true
			}
			continue
		}
		prev, run = r, 1
	}
	return false
}

// ShannonEntropy returns the entropy, in bits per symbol, of the password's
// character frequency distribution.
func ShannonEntropy(password string) float64 {
	syms := symbols(password)
	if len(syms) == 0 {
		return 0
	}
	counts := make(map[rune]int)
	for _, r := range syms {
		counts[r]++
	}
	var entropy float64
	for _, c := range counts {
		p := float64(c) / float64(len(syms))
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
