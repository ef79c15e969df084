package cli

import (
	"errors"
	"math"
	"strings"

	"github.com/spf13/cobra"
)

func newGigsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gigs",
		Short: "Browse and create gigs",
	}
	cmd.AddCommand(newGigsListCmd(app))
	cmd.AddCommand(newGigsCreateCmd(app))
	return cmd
}

func newGigsListCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gigs, optionally filtered by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			gigs, err := client.ListGigs(cmd.Context(), search)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, gigs)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Filter gigs by title substring (server-side)")
	return cmd
}

func newGigsCreateCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		budget      float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new gig",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return errors.New("Title is required")
			}
			if strings.TrimSpace(description) == "" {
				return errors.New("Description is required")
			}
			if budget <= 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
				return errors.New("Budget must be a positive number")
			}
			_, client, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			gig, err := client.CreateGig(cmd.Context(), title, description, budget)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, gig)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Gig title")
	cmd.Flags().StringVar(&description, "description", "", "Gig description (markdown)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget in USD")
	return cmd
}
