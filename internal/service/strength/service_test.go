package strength

import (
	"math/rand/v2"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
	engine "github.com/jwalitptl/passmeter/pkg/strength"
	"github.com/jwalitptl/passmeter/pkg/suggest"
)

func newService(t *testing.T, baseline int) (*Service, *metrics.Metrics) {
	t.Helper()

	est := engine.EstimatorFunc(func(string) engine.Estimate { return engine.Estimate{Score: baseline} })
	m := metrics.New("test", prometheus.NewRegistry())
	gen := suggest.New(suggest.WithRand(rand.New(rand.NewPCG(1, 2))))
	return NewService(engine.NewAnalyzer(engine.WithEstimator(est)), gen, m, logger.Nop()), m
}

func TestAnalyzeWeakCarriesSuggestion(t *testing.T) {
	svc, m := newService(t, 0)

	resp := svc.Analyze("abc", "social")

	assert.Less(t, resp.Score, SuggestBelow)
	assert.Equal(t, "social", resp.AccountType)
	assert.Equal(t, engine.Label(resp.Score), resp.Label)
	assert.Len(t, resp.Attacks, 4)
	assert.Contains(t, resp.Patterns, "Short password (less than 8 characters)")
	assert.NotEmpty(t, resp.Suggestion)
	assert.NotEqual(t, "abc", resp.Suggestion)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("social", "false")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ScoreSummary))
}

func TestAnalyzeStrongHasNoSuggestion(t *testing.T) {
	svc, _ := newService(t, 4)

	resp := svc.Analyze("Xq7!vR2#kP9$", "general")

	assert.GreaterOrEqual(t, resp.Score, SuggestBelow)
	assert.Empty(t, resp.Suggestion)
	assert.Equal(t, "Strong", resp.Label)
}

func TestAnalyzeEmpty(t *testing.T) {
	svc, m := newService(t, 4)

	resp := svc.Analyze("", "unknown")

	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, engine.DefaultAccountType, resp.AccountType)
	assert.NotNil(t, resp.Patterns)
	assert.Empty(t, resp.Patterns)
	assert.Empty(t, resp.Suggestion)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Suggestions.WithLabelValues(string(suggest.StrategyFresh))))
}

func TestAnalyzeCountsBreaches(t *testing.T) {
	svc, m := newService(t, 0)

	resp := svc.Analyze("password", "general")

	assert.True(t, resp.IsBreached)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreachHits))
}

func TestSuggestUsesGivenScore(t *testing.T) {
	svc, m := newService(t, 4)

	sg := svc.Suggest("abc", intPtr(5), "general")

	assert.Equal(t, suggest.StrategyFresh, sg.Strategy)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Suggestions.WithLabelValues(string(suggest.StrategyFresh))))
}

func TestSuggestScoresWhenOmitted(t *testing.T) {
	svc, _ := newService(t, 4)

	sg := svc.Suggest("Xq7!vR2#kP9$", nil, "general")

	assert.Equal(t, suggest.StrategyMutate, sg.Strategy)
	assert.NotEmpty(t, sg.Password)
}

func TestPoliciesOrdered(t *testing.T) {
	svc, _ := newService(t, 0)

	views := svc.Policies()

	require.Len(t, views, len(engine.PolicyKeys()))
	for i, key := range engine.PolicyKeys() {
		assert.Equal(t, key, views[i].Key)
		p, _ := engine.PolicyFor(key)
		assert.Equal(t, p, views[i].Policy)
	}
}

func TestBuilders(t *testing.T) {
	svc, _ := newService(t, 0)

	pw, err := svc.Generate(suggest.DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, pw, 16)

	_, err = svc.Generate(suggest.Options{Length: 2, Lowercase: true})
	assert.ErrorIs(t, err, suggest.ErrInvalidLength)

	assert.NotEmpty(t, svc.Passphrase())

	custom, err := svc.Custom([]string{"river", "maple"})
	require.NoError(t, err)
	assert.NotEmpty(t, custom)

	_, err = svc.Custom(nil)
	assert.ErrorIs(t, err, suggest.ErrNoWords)

	assert.False(t, svc.EvaluatePassphrase("").Strong)
}

func intPtr(v int) *int { return &v }
