package strength

import (
	"strconv"

	"github.com/jwalitptl/passmeter/internal/model"
	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
	engine "github.com/jwalitptl/passmeter/pkg/strength"
	"github.com/jwalitptl/passmeter/pkg/suggest"
)

// SuggestBelow is the score under which an analysis carries a suggestion.
const SuggestBelow = 70

type StrengthServicer interface {
	Analyze(password, accountType string) *model.AnalyzeResponse
	Suggest(password string, score *int, accountType string) suggest.Suggestion
	Policies() []PolicyView
	Generate(opts suggest.Options) (string, error)
	Passphrase() string
	EvaluatePassphrase(passphrase string) engine.PassphraseEvaluation
	Custom(words []string) (string, error)
}

// PolicyView is a policy together with the account type that selects it.
type PolicyView struct {
	Key string `json:"key"`
	engine.Policy
}

type Service struct {
	analyzer  *engine.Analyzer
	generator *suggest.Generator
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewService(analyzer *engine.Analyzer, generator *suggest.Generator, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		analyzer:  analyzer,
		generator: generator,
		metrics:   m,
		logger:    log,
	}
}

func (s *Service) Analyze(password, accountType string) *model.AnalyzeResponse {
	analysis := s.analyzer.Analyze(password, accountType)
	s.observe(analysis)

	patterns := engine.DetectPatterns(password)
	if patterns == nil {
		patterns = []string{}
	}

	resp := &model.AnalyzeResponse{
		Analysis: analysis,
		Label:    engine.Label(analysis.Score),
		Attacks:  engine.AttackBreakdown(analysis.Score),
		Patterns: patterns,
	}

	if password != "" && analysis.Score < SuggestBelow {
		resp.Suggestion = s.improve(password, analysis.Score).Password
	}

	s.logger.Debug("password analyzed",
		"account_type", analysis.AccountType,
		"score", analysis.Score,
		"meets_requirements", analysis.MeetsRequirements,
	)
	return resp
}

// Suggest improves password. When score is nil the password is scored
// first under accountType.
func (s *Service) Suggest(password string, score *int, accountType string) suggest.Suggestion {
	var current int
	if score != nil {
		current = *score
	} else {
		current = s.analyzer.Analyze(password, accountType).Score
	}
	return s.improve(password, current)
}

func (s *Service) Policies() []PolicyView {
	table := engine.Policies()
	keys := engine.PolicyKeys()

	views := make([]PolicyView, 0, len(keys))
	for _, key := range keys {
		views = append(views, PolicyView{Key: key, Policy: table[key]})
	}
	return views
}

func (s *Service) Generate(opts suggest.Options) (string, error) {
	return s.generator.GeneratePassword(opts)
}

func (s *Service) Passphrase() string {
	return s.generator.Passphrase()
}

func (s *Service) EvaluatePassphrase(passphrase string) engine.PassphraseEvaluation {
	return engine.EvaluatePassphrase(passphrase)
}

func (s *Service) Custom(words []string) (string, error) {
	return s.generator.FromWords(words)
}

func (s *Service) improve(password string, score int) suggest.Suggestion {
	sg := s.generator.Improve(password, score)
	s.metrics.Suggestions.WithLabelValues(string(sg.Strategy)).Inc()
	return sg
}

func (s *Service) observe(a engine.Analysis) {
	s.metrics.Analyses.WithLabelValues(a.AccountType, strconv.FormatBool(a.MeetsRequirements)).Inc()
	s.metrics.ScoreSummary.Observe(float64(a.Score))
	if a.IsBreached {
		s.metrics.BreachHits.Inc()
	}
}
