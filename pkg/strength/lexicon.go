package strength

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// YYMMDD-like run, e.g. 900415.
	dateLikeRe = regexp.MustCompile(`\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])`)
	yearLikeRe = regexp.MustCompile(`\d{4}`)
)

// Lexicon holds the word and pattern lists the heuristics match against.
// The lists are illustrative rather than exhaustive and can be replaced
// wholesale with LoadLexicon.
type Lexicon struct {
	Names             []string            `yaml:"names"`
	PetNames          []string            `yaml:"pet_names"`
	KeyboardSequences []string            `yaml:"keyboard_sequences"`
	Multilingual      map[string][]string `yaml:"multilingual"`
	Breached          []string            `yaml:"breached"`

	breached map[string]struct{}
}

// DefaultLexicon returns the built-in lists.
func DefaultLexicon() *Lexicon {
	l := &Lexicon{
		Names:             []string{"john", "mary", "robert", "james", "patricia", "michael", "linda", "william"},
		PetNames:          []string{"max", "bella", "charlie", "lucy", "cooper", "luna", "buddy", "daisy"},
		KeyboardSequences: []string{"qwerty", "asdfgh", "123456", "abcdef", "zxcvbn"},
		Multilingual: map[string][]string{
			"spanish": {"contraseña", "hola", "amigo", "gracias", "amor", "casa", "familia"},
			"french":  {"bonjour", "merci", "amour", "maison", "famille", "travail", "chat"},
			"german":  {"passwort", "hallo", "liebe", "haus", "familie", "arbeit", "katze"},
			"chinese": {"nihao", "xiexie", "aiqing", "jia", "gongzuo"},
		},
		Breached: []string{
			"password", "password123", "123456", "qwerty", "admin", "welcome",
			"login", "abc123", "letmein", "monkey", "dragon", "football", "baseball",
			"sunshine", "iloveyou", "trustno1", "princess", "master", "1234567", "12345678",
			"123456789", "welcome1", "admin123", "qwerty123",
		},
	}
	l.index()
	return l
}

// LoadLexicon reads a YAML lexicon. Lists present in the document replace
// the built-in ones; absent lists keep their defaults.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	var doc Lexicon
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}

	l := DefaultLexicon()
	if doc.Names != nil {
		l.Names = lowerAll(doc.Names)
	}
	if doc.PetNames != nil {
		l.PetNames = lowerAll(doc.PetNames)
	}
	if doc.KeyboardSequences != nil {
		l.KeyboardSequences = lowerAll(doc.KeyboardSequences)
	}
	if doc.Multilingual != nil {
		l.Multilingual = make(map[string][]string, len(doc.Multilingual))
		for lang, words := range doc.Multilingual {
			l.Multilingual[lang] = lowerAll(words)
		}
	}
	if doc.Breached != nil {
		l.Breached = lowerAll(doc.Breached)
	}
	l.index()
	return l, nil
}

// LoadLexiconFile reads a YAML lexicon from path. An empty path returns the
// default lexicon.
func LoadLexiconFile(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	return LoadLexicon(f)
}

func (l *Lexicon) index() {
	l.breached = make(map[string]struct{}, len(l.Breached))
	for _, p := range l.Breached {
		l.breached[strings.ToLower(p)] = struct{}{}
	}
}

// IsBreached reports whether the password, ignoring case, is on the known-weak list.
func (l *Lexicon) IsBreached(password string) bool {
	lower := strings.ToLower(password)
	if l.breached == nil {
		// built as a literal rather than through DefaultLexicon/LoadLexicon
		for _, p := range l.Breached {
			if strings.ToLower(p) == lower {
				return true
			}
		}
		return false
	}
	_, ok := l.breached[lower]
	return ok
}

// ContainsPersonalInfo reports whether the password carries a common name,
// pet name, date or year, or a keyboard run.
func (l *Lexicon) ContainsPersonalInfo(password string) bool {
	lower := strings.ToLower(password)
	for _, list := range [][]string{l.Names, l.PetNames} {
		if containsAny(lower, list) {
			return true
		}
	}
	if dateLikeRe.MatchString(lower) || yearLikeRe.MatchString(lower) {
		return true
	}
	return containsAny(lower, l.KeyboardSequences)
}

// ContainsMultilingualWord reports whether any dictionary word of any language
// appears in the password.
func (l *Lexicon) ContainsMultilingualWord(password string) bool {
	lower := strings.ToLower(password)
	for _, words := range l.Multilingual {
		if containsAny(lower, words) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
