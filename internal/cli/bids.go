package cli

import (
	"errors"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"gigflow-cli/internal/model"
)

func newBidsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bids",
		Short: "Submit and inspect bids",
	}
	cmd.AddCommand(newBidsSubmitCmd(app))
	cmd.AddCommand(newBidsListCmd(app))
	return cmd
}

func newBidsSubmitCmd(app *App) *cobra.Command {
	var (
		message string
		price   float64
	)

	cmd := &cobra.Command{
		Use:   "submit <gig-id>",
		Short: "Submit a bid on a gig",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
				return errors.New("Price must be a positive number")
			}
			if strings.TrimSpace(message) == "" {
				return errors.New("Message is required")
			}
			_, client, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			bid, err := client.SubmitBid(cmd.Context(), args[0], message, price)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, bid)
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "Pitch to the gig owner")
	cmd.Flags().Float64Var(&price, "price", 0, "Offered price in USD")
	return cmd
}

func newBidsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <gig-id>",
		Short: "List bids on a gig you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			gig, bids, err := client.BidsForGig(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := struct {
				Gig  model.Gig   `json:"gig"`
				Bids []model.Bid `json:"bids"`
			}{Gig: gig, Bids: bids}
			return printJSON(cmd, app, out)
		},
	}
}

func newHireCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "hire <bid-id>",
		Short: "Hire the freelancer behind a bid",
		Long: strings.TrimSpace(`
Hire the freelancer behind a bid. Hiring is one-way: the gig becomes
assigned and the server rejects every other bid on it. Because there is
no undo, the command refuses to run without --yes.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("hiring rejects all other bids and cannot be undone; re-run with --yes to confirm")
			}
			_, client, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			bid, err := client.Hire(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, app, bid)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the hire")
	return cmd
}
