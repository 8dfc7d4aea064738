// Package strength scores passwords against account-tier policies.
//
// The score combines a baseline estimator (zxcvbn by default) with local
// heuristics for leet substitutions, repeats, entropy, personal information
// and common words, and credits passphrases separately.
package strength

import "sync"

// Analysis is the result of scoring one password.
type Analysis struct {
	Score                int            `json:"score"`
	BaselineScore        int            `json:"baseline_score"`
	Feedback             []FeedbackItem `json:"feedback"`
	CrackTime            string         `json:"crack_time"`
	IsBreached           bool           `json:"is_breached"`
	ContainsPersonalInfo bool           `json:"contains_personal_info"`
	MeetsRequirements    bool           `json:"meets_requirements"`
	AccountType          string         `json:"account_type"`
	Advice               string         `json:"advice"`
}

// Analyzer scores passwords. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	estimator Estimator
	lexicon   *Lexicon
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithEstimator replaces the baseline estimator.
func WithEstimator(e Estimator) Option {
	return func(a *Analyzer) {
		if e != nil {
			a.estimator = e
		}
	}
}

// WithLexicon replaces the word and pattern lists.
func WithLexicon(l *Lexicon) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.lexicon = l
		}
	}
}

// NewAnalyzer returns an analyzer using zxcvbn and the default lexicon
// unless overridden.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.estimator == nil {
		a.estimator = NewZxcvbnEstimator()
	}
	if a.lexicon == nil {
		a.lexicon = DefaultLexicon()
	}
	return a
}

// Lexicon returns the lists the analyzer matches against.
func (a *Analyzer) Lexicon() *Lexicon {
	return a.lexicon
}

// Analyze scores password under the policy for accountType. Unknown account
// types use the general policy. It accepts any string.
func (a *Analyzer) Analyze(password, accountType string) Analysis {
	policy, key := PolicyFor(accountType)
	if password == "" {
		return Analysis{
			Feedback:    []FeedbackItem{},
			CrackTime:   CrackInstant,
			AccountType: key,
			Advice:      AdviceEmpty,
		}
	}

	est := a.estimate(password)
	e := &evaluation{
		password:     password,
		length:       runeLen(password),
		policy:       policy,
		classes:      classify(password),
		breached:     a.lexicon.IsBreached(password),
		personal:     a.lexicon.ContainsPersonalInfo(password),
		multilingual: a.lexicon.ContainsMultilingualWord(password),
		passphrase:   IsPassphrase(password),
		estimate:     est,
	}

	score := a.heuristicScore(e)
	if e.passphrase {
		score = max(score, passphraseScore(password))
	}
	e.score = clampScore(score)

	return Analysis{
		Score:                e.score,
		BaselineScore:        est.Score,
		Feedback:             buildFeedback(e),
		CrackTime:            crackTime(password, e.score),
		IsBreached:           e.breached,
		ContainsPersonalInfo: e.personal,
		MeetsRequirements:    meetsRequirements(e),
		AccountType:          key,
		Advice:               advice(e),
	}
}

func (a *Analyzer) estimate(password string) Estimate {
	est := a.estimator.Estimate(password)
	est.Score = clampBaseline(est.Score)
	return est
}

// heuristicScore adjusts the baseline estimate, scaled to 0..100, by the
// local heuristics. The result is not clamped.
func (a *Analyzer) heuristicScore(e *evaluation) int {
	score := e.estimate.Score * 25
	if a.estimate(NormalizeLeet(e.password)).Score < e.estimate.Score {
		score -= 15
	}
	if hasTripleRepeat(e.password) {
		score -= 10
	}
	if ShannonEntropy(e.password) > 4 {
		score += 10
	}
	if e.personal {
		score -= 20
	}
	if e.multilingual {
		score -= 15
	}
	return score
}

func clampScore(score int) int {
	return max(0, min(100, score))
}

var (
	defaultOnce     sync.Once
	defaultAnalyzer *Analyzer
)

// Default returns the shared analyzer built with NewAnalyzer().
func Default() *Analyzer {
	defaultOnce.Do(func() {
		defaultAnalyzer = NewAnalyzer()
	})
	return defaultAnalyzer
}

// Analyze scores password with the default analyzer.
func Analyze(password, accountType string) Analysis {
	return Default().Analyze(password, accountType)
}
