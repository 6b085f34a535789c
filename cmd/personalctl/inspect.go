package main

import "github.com/spf13/cobra"

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a per-type summary of the user's stored context",
	Long: `Show counts, recent keywords, and the sentiment trend per record type.

Example:
  personalctl summary --user u1`,
	RunE: runSummary,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user's derived profile",
	Long: `Derive and print the user's current profile from their full history.

A user with no history receives the cold-start defaults.

Example:
  personalctl profile --user u1`,
	RunE: runProfile,
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	eng, _, cleanup, err := newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := eng.ContextSummary(cmd.Context(), userID)
	if err != nil {
		return err
	}
	return printJSON(summary)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	eng, _, cleanup, err := newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	profile, err := eng.GetProfile(cmd.Context(), userID)
	if err != nil {
		return err
	}
	return printJSON(profile)
}
