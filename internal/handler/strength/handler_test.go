package strength

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/passmeter/internal/middleware"
	"github.com/jwalitptl/passmeter/internal/model"
	strengthService "github.com/jwalitptl/passmeter/internal/service/strength"
	engine "github.com/jwalitptl/passmeter/pkg/strength"
	"github.com/jwalitptl/passmeter/pkg/suggest"
)

type stubService struct {
	generateErr error
	gotOptions  suggest.Options
	gotScore    *int
}

func (s *stubService) Analyze(password, accountType string) *model.AnalyzeResponse {
	return &model.AnalyzeResponse{Analysis: engine.Analysis{Score: 42, AccountType: accountType}}
}

func (s *stubService) Suggest(password string, score *int, accountType string) suggest.Suggestion {
	s.gotScore = score
	return suggest.Suggestion{Password: "better", Strategy: suggest.StrategyMutate}
}

func (s *stubService) Policies() []strengthService.PolicyView { return nil }

func (s *stubService) Generate(opts suggest.Options) (string, error) {
	s.gotOptions = opts
	return "generated", s.generateErr
}

func (s *stubService) Passphrase() string { return "a b c d" }

func (s *stubService) EvaluatePassphrase(string) engine.PassphraseEvaluation {
	return engine.PassphraseEvaluation{}
}

func (s *stubService) Custom([]string) (string, error) { return "", suggest.ErrNoWords }

func newEngine(svc strengthService.StrengthServicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(middleware.ErrorHandler())
	NewHandler(svc).RegisterRoutes(&e.RouterGroup)
	return e
}

func post(e *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return w
}

func TestGenerateAppliesDefaults(t *testing.T) {
	svc := &stubService{}
	w := post(newEngine(svc), "/generate", `{"numbers":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, suggest.Options{Length: 16, Uppercase: true, Lowercase: true, Numbers: false, Symbols: true}, svc.gotOptions)
}

func TestGenerateErrorMapping(t *testing.T) {
	w := post(newEngine(&stubService{generateErr: suggest.ErrInvalidLength}), "/generate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(newEngine(&stubService{generateErr: errors.New("entropy source failed")}), "/generate", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "entropy source")
}

func TestCustomNoWords(t *testing.T) {
	w := post(newEngine(&stubService{}), "/custom", `{"words":["x"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), suggest.ErrNoWords.Error())
}

func TestSuggestScoreOptional(t *testing.T) {
	svc := &stubService{}
	e := newEngine(svc)

	w := post(e, "/suggest", `{"password":"abc"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.gotScore)
	assert.Contains(t, w.Body.String(), `"suggestion":"better"`)

	post(e, "/suggest", `{"password":"abc","score":0}`)
	if assert.NotNil(t, svc.gotScore) {
		assert.Equal(t, 0, *svc.gotScore)
	}
}

func TestAnalyzePassesAccountType(t *testing.T) {
	w := post(newEngine(&stubService{}), "/analyze", `{"password":"x","account_type":"social"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"account_type":"social"`)
	assert.Contains(t, w.Body.String(), `"score":42`)
}
