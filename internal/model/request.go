package model

import (
	"github.com/jwalitptl/passmeter/pkg/strength"
	"github.com/jwalitptl/passmeter/pkg/suggest"
)

// MaxPasswordRunes bounds every password accepted over the API.
const MaxPasswordRunes = 512

type AnalyzeRequest struct {
	Password    string `json:"password" binding:"max=512"`
	AccountType string `json:"account_type" binding:"max=32"`
}

// AnalyzeResponse is an analysis plus the presentation extras the API adds.
type AnalyzeResponse struct {
	strength.Analysis
	Label      string                    `json:"label"`
	Attacks    []strength.AttackEstimate `json:"attacks"`
	Patterns   []string                  `json:"patterns"`
	Suggestion string                    `json:"suggestion,omitempty"`
}

type SuggestRequest struct {
	Password    string `json:"password" binding:"max=512"`
	Score       *int   `json:"score" binding:"omitempty,min=0,max=100"`
	AccountType string `json:"account_type" binding:"max=32"`
}

type GenerateRequest struct {
	Length    int   `json:"length" binding:"omitempty,min=4,max=128"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// Options applies the request over suggest.DefaultOptions.
func (r GenerateRequest) Options() suggest.Options {
	opts := suggest.DefaultOptions()
	if r.Length != 0 {
		opts.Length = r.Length
	}
	for _, f := range []struct {
		in  *bool
		out *bool
	}{
		{r.Uppercase, &opts.Uppercase},
		{r.Lowercase, &opts.Lowercase},
		{r.Numbers, &opts.Numbers},
		{r.Symbols, &opts.Symbols},
	} {
		if f.in != nil {
			*f.out = *f.in
		}
	}
	return opts
}

type EvaluatePassphraseRequest struct {
	Passphrase string `json:"passphrase" binding:"max=512"`
}

type CustomPasswordRequest struct {
	Words []string `json:"words" binding:"required,min=1,max=20,dive,max=64"`
}

type SaveHistoryRequest struct {
	Password    string `json:"password" binding:"required,max=512"`
	AccountType string `json:"account_type" binding:"max=32"`
}
