package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.restoring {
		return m.placeCentered(m.spin.View() + " Loading…")
	}

	switch m.modal {
	case modalBidForm:
		return m.placeCentered(m.viewBidForm())
	case modalBidList:
		return m.placeCentered(m.viewBidList())
	case modalConfirmHire:
		body := fmt.Sprintf("Hire %s for %s?\nThis will automatically reject all other bids.",
			m.confirmBid.Freelancer.Name, formatMoney(m.confirmBid.Price))
		return m.placeCentered(renderConfirmModal(m.width, "Hire freelancer", body, "Hire", "Cancel", m.confirmFocus))
	}

	switch m.view {
	case viewLogin, viewRegister:
		return m.placeCentered(m.viewAuth())
	case viewBrowse:
		return m.viewBrowse()
	case viewCreateGig:
		return m.placeCentered(m.viewCreateGig())
	default:
		return ""
	}
}

func (m appModel) viewAuth() string {
	register := m.view == viewRegister

	title := "GigFlow — Sign in"
	action := "sign in"
	toggleHint := "ctrl+t: create an account instead"
	if register {
		title = "GigFlow — Create account"
		action = "register"
		toggleHint = "ctrl+t: sign in instead"
	}

	var rows []string
	if register {
		rows = append(rows, "Name", m.nameInput.View(), "")
	}
	rows = append(rows, "Email", m.emailInput.View(), "", "Password", m.passwordInput.View())

	if m.authErr != "" {
		rows = append(rows, "", styleError().Render(m.authErr))
	}
	if m.authBusy {
		rows = append(rows, "", m.spin.View()+" Signing in…")
	}
	rows = append(rows, "", styleMuted().Render(fmt.Sprintf("enter: %s   tab: next field   %s   ctrl+c: quit", action, toggleHint)))

	return renderModalBox(m.width, title, strings.Join(rows, "\n"))
}

func (m appModel) viewBrowse() string {
	name := ""
	if m.user != nil {
		name = m.user.Name
	}
	header := styleHeader().Render("GigFlow") + styleMuted().Render("  Welcome, "+name)

	search := "Search: " + m.searchInput.View()
	if m.activeSearch != "" && !m.searchFocused {
		search += styleMuted().Render("  (filtering by \"" + m.activeSearch + "\" — c: clear)")
	}

	body := m.viewGigPanes()

	footer := styleMuted().Render("enter: bid/view bids   n: new gig   /: search   r: refresh   x: sign out   q: quit")
	return strings.Join([]string{header, search, body, footer}, "\n\n")
}

// viewGigPanes renders the gig list and the selected gig's detail side by
// side. Loading takes precedence; a fetch error is a display-only state that
// replaces the list until the next successful fetch.
func (m appModel) viewGigPanes() string {
	bodyHeight := m.height - 8
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	if m.gigsLoading {
		return normalizePane(m.spin.View()+" Loading gigs…", m.paneWidth(), bodyHeight)
	}
	if m.gigsErr != "" {
		return normalizePane(styleError().Render(m.gigsErr), m.paneWidth(), bodyHeight)
	}
	if len(m.gigs) == 0 {
		return normalizePane(styleMuted().Render("No gigs found. Be the first to create one! (n)"), m.paneWidth(), bodyHeight)
	}

	leftWidth := m.paneWidth() / 2
	if leftWidth < 40 {
		leftWidth = 40
	}
	rightWidth := m.paneWidth() - leftWidth - 2
	if rightWidth < 30 {
		rightWidth = 30
	}

	left := normalizePane(m.gigsList.View(), leftWidth, bodyHeight)

	detail := "No gig selected."
	if gig, ok := m.selectedGig(); ok {
		var b strings.Builder
		b.WriteString(styleHeader().Render(gig.Title) + "\n")
		b.WriteString(styleGigStatus(string(gig.Status)).Render("["+string(gig.Status)+"]") + "\n\n")
		b.WriteString("Budget:    " + formatMoney(gig.Budget) + "\n")
		b.WriteString("Posted by: " + gig.Owner.Name + " <" + gig.Owner.Email + ">\n")
		b.WriteString("Created:   " + formatDate(gig.CreatedAt) + "\n\n")
		b.WriteString(renderMarkdown(gig.Description, rightWidth-2))
		detail = b.String()
	}
	right := normalizePane(detail, rightWidth, bodyHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m appModel) paneWidth() int {
	w := m.width
	if w < 40 {
		w = 40
	}
	return w
}

func (m appModel) viewCreateGig() string {
	rows := []string{
		"Title",
		m.titleInput.View(),
		"",
		"Budget (USD)",
		m.budgetInput.View(),
		"",
		"Description",
		m.descArea.View(),
	}
	if m.createErr != "" {
		rows = append(rows, "", styleError().Render(m.createErr))
	}
	if m.createBusy {
		rows = append(rows, "", m.spin.View()+" Creating…")
	}
	rows = append(rows, "", styleMuted().Render("ctrl+s: create   tab: next field   esc: cancel"))
	return renderModalBox(m.width, "Create New Gig", strings.Join(rows, "\n"))
}

func (m appModel) viewBidForm() string {
	rows := []string{
		styleMuted().Render("Gig: " + m.bidGig.Title),
		"",
		"Your Message *",
		m.bidMsgArea.View(),
		"",
		fmt.Sprintf("Your Price (USD) *   %s", styleMuted().Render("Budget: "+formatMoney(m.bidGig.Budget))),
		m.bidPriceInput.View(),
	}
	if m.bidErr != "" {
		rows = append(rows, "", styleError().Render(m.bidErr))
	}
	if m.bidBusy {
		rows = append(rows, "", m.spin.View()+" Submitting…")
	}
	rows = append(rows, "", styleMuted().Render("ctrl+s: submit bid   tab: switch field   esc: cancel"))
	return renderModalBox(m.width, "Submit Bid", strings.Join(rows, "\n"))
}

func (m appModel) viewBidList() string {
	title := "Bids for Gig"
	if m.bidListGig != nil {
		title = "Bids: " + m.bidListGig.Title
	}

	var rows []string
	switch {
	case m.bidsLoading:
		rows = append(rows, m.spin.View()+" Loading bids…")
	case m.bidsErr != "" && len(m.bids) == 0:
		rows = append(rows, styleError().Render(m.bidsErr))
	case len(m.bids) == 0:
		// An empty successful result, distinct from a fetch error.
		rows = append(rows, styleMuted().Render("No bids yet for this gig."))
	default:
		if m.bidsErr != "" {
			// A failed hire keeps the last-known snapshot visible.
			rows = append(rows, styleError().Render(m.bidsErr), "")
		}
		if m.bidListGig != nil {
			summary := fmt.Sprintf("Total Bids: %d   Gig Budget: %s   Status: %s",
				len(m.bids), formatMoney(m.bidListGig.Budget), m.bidListGig.Status)
			rows = append(rows, styleMuted().Render(summary), "")
		}
		rows = append(rows, m.bidsList.View())
	}

	rows = append(rows, "", styleMuted().Render("enter: hire selected   r: refresh   esc: close"))
	return renderModalBox(m.width, title, strings.Join(rows, "\n"))
}
