// Package tui is the interactive marketplace client: a single bubbletea
// model owns all view state (session, gig list, active modal) and every
// remote round trip re-enters the update loop as a typed message.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gigflow-cli/internal/api"
	"gigflow-cli/internal/session"
)

func Run(sess *session.Manager, client *api.Client) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(sess, client)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
