package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/passmeter/pkg/suggest"
)

func generateCmd(a *app) *cobra.Command {
	opts := suggest.DefaultOptions()
	var noUpper, noLower, noNumbers, noSymbols bool

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Uppercase = !noUpper
			opts.Lowercase = !noLower
			opts.Numbers = !noNumbers
			opts.Symbols = !noSymbols

			password, err := a.svc.Generate(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}

	c.Flags().IntVarP(&opts.Length, "length", "l", opts.Length, fmt.Sprintf("password length (%d-%d)", suggest.MinLength, suggest.MaxLength))
	c.Flags().BoolVar(&noUpper, "no-upper", false, "leave out uppercase letters")
	c.Flags().BoolVar(&noLower, "no-lower", false, "leave out lowercase letters")
	c.Flags().BoolVar(&noNumbers, "no-numbers", false, "leave out digits")
	c.Flags().BoolVar(&noSymbols, "no-symbols", false, "leave out symbols")
	return c
}

func passphraseCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "passphrase",
		Short: "Generate a memorable passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.svc.Passphrase())
			return nil
		},
	}
	c.AddCommand(passphraseCheckCmd(a))
	return c
}

func passphraseCheckCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "check [passphrase]",
		Short: "Evaluate a passphrase you chose",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}

			eval := a.svc.EvaluatePassphrase(phrase)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), eval)
			}
			if eval.Strong {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓"), eval.Feedback)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", warningStyle.Render("!"), eval.Feedback)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "print the verdict as JSON")
	return c
}

func customCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "custom word [word...]",
		Short: "Build a password from your own words",
		Args:  cobra.RangeArgs(1, 20),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.svc.Custom(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), password)
			return nil
		},
	}
}
