package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/passmeter/pkg/strength"
)

func analyzeCmd(a *app) *cobra.Command {
	var accountType string
	var asJSON bool

	c := &cobra.Command{
		Use:   "analyze [password]",
		Short: "Score a password against an account policy",
		Long:  "Score a password against an account policy. Without an argument the first line of stdin is read.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}
			if err := checkLength(password); err != nil {
				return err
			}

			resp := a.svc.Analyze(password, accountType)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			renderAnalysis(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	c.Flags().StringVarP(&accountType, "account-type", "a", strength.DefaultAccountType, "policy to check against (general, social, financial, critical)")
	c.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return c
}

func suggestCmd(a *app) *cobra.Command {
	var accountType string
	var asJSON bool

	c := &cobra.Command{
		Use:   "suggest [password]",
		Short: "Suggest a stronger variant of a password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}
			if err := checkLength(password); err != nil {
				return err
			}

			s := a.svc.Suggest(password, nil, accountType)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Password)
			return nil
		},
	}

	c.Flags().StringVarP(&accountType, "account-type", "a", strength.DefaultAccountType, "policy used to score the password first")
	c.Flags().BoolVar(&asJSON, "json", false, "print the suggestion and strategy as JSON")
	return c
}

func policiesCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "policies",
		Short: "List the account policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views := a.svc.Policies()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			renderPolicies(cmd.OutOrStdout(), views)
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "print the policies as JSON")
	return c
}
