// Package cli wires the scriptable gigflow commands and the interactive TUI
// to the shared API client and session manager.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"gigflow-cli/internal/api"
	"gigflow-cli/internal/config"
	"gigflow-cli/internal/session"
	"gigflow-cli/internal/tui"
)

type App struct {
	APIURL     string
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "gigflow",
		Short:        "GigFlow freelance-gig marketplace client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  gigflow

  # Scriptable commands
  gigflow login --email a@x.com --password secret
  gigflow gigs list --search api
  gigflow bids list <gig-id>
  gigflow hire <bid-id> --yes
`),
		Args: cobra.NoArgs,
		// No subcommand starts the interactive TUI.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", "", "Base URL of the GigFlow backend (default: $GIGFLOW_API_URL or http://localhost:5000)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Local cache dir (default: $GIGFLOW_DIR or ~/.gigflow)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newGigsCmd(app))
	cmd.AddCommand(newBidsCmd(app))
	cmd.AddCommand(newHireCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, client, err := app.setup(context.Background())
	if err != nil {
		return err
	}
	return tui.Run(sess, client)
}

// setup resolves config (flags override env), builds the API client with the
// persisted cookie jar, and hands back the session manager on top of both.
func (app *App) setup(ctx context.Context) (*session.Manager, *api.Client, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}
	if app.APIURL != "" {
		cfg.APIURL = app.APIURL
	}
	if app.Dir != "" {
		cfg.Dir = app.Dir
	}

	base, err := url.Parse(strings.TrimRight(cfg.APIURL, "/"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid API URL %q: %w", cfg.APIURL, err)
	}

	cache := session.Cache{Dir: cfg.Dir}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, nil, err
	}
	jar := cache.NewCookieJar(ctx, base, inner)

	client, err := api.NewClient(cfg.APIURL, cfg.HTTPTimeout, jar)
	if err != nil {
		return nil, nil, err
	}
	return session.NewManager(cache, client), client, nil
}

func printJSON(cmd *cobra.Command, app *App, v any) error {
	var (
		raw []byte
		err error
	)
	if app.PrettyJSON {
		raw, err = json.MarshalIndent(v, "", "  ")
	} else {
		raw, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}
