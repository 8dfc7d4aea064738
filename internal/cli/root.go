// Package cli implements pwcheck, a terminal front end to the strength
// engine that needs no server.
package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/passmeter/internal/config"
	strengthService "github.com/jwalitptl/passmeter/internal/service/strength"
	"github.com/jwalitptl/passmeter/pkg/logger"
	"github.com/jwalitptl/passmeter/pkg/metrics"
	"github.com/jwalitptl/passmeter/pkg/strength"
	"github.com/jwalitptl/passmeter/pkg/suggest"
)

// ServiceFactory builds the strength service from an optional lexicon file.
type ServiceFactory func(lexiconPath string) (strengthService.StrengthServicer, error)

func Execute() {
	cmd := NewRootCmd(DefaultService)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// DefaultService wires the zxcvbn-backed analyzer from the same
// configuration the API reads, so both score a password alike. A non-empty
// lexiconPath overrides strength.lexicon_file. Metrics are collected on a
// throwaway registry.
func DefaultService(lexiconPath string) (strengthService.StrengthServicer, error) {
	cfg, err := config.Load(os.Getenv("PASSMETER_CONFIG"))
	if err != nil {
		return nil, err
	}
	if lexiconPath == "" {
		lexiconPath = cfg.Strength.LexiconFile
	}

	lexicon, err := strength.LoadLexiconFile(lexiconPath)
	if err != nil {
		return nil, err
	}
	analyzer := strength.NewAnalyzer(
		strength.WithEstimator(strength.NewZxcvbnEstimator(cfg.Strength.UserInputs...)),
		strength.WithLexicon(lexicon),
	)
	generator := suggest.New(suggest.WithLexicon(lexicon))
	return strengthService.NewService(analyzer, generator, metrics.New("pwcheck", prometheus.NewRegistry()), logger.Nop()), nil
}

type app struct {
	newService ServiceFactory
	svc        strengthService.StrengthServicer
	lexicon    string
	noColor    bool
}

func NewRootCmd(factory ServiceFactory) *cobra.Command {
	a := &app{newService: factory}

	cmd := &cobra.Command{
		Use:           "pwcheck",
		Short:         "Score passwords and suggest stronger ones",
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.noColor || os.Getenv("NO_COLOR") != "" {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			svc, err := a.newService(a.lexicon)
			if err != nil {
				return err
			}
			a.svc = svc
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&a.lexicon, "lexicon", "", "YAML file replacing the built-in word lists")

	cmd.AddCommand(
		analyzeCmd(a),
		suggestCmd(a),
		policiesCmd(a),
		generateCmd(a),
		passphraseCmd(a),
		customCmd(a),
	)
	return cmd
}
