package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gigflow-cli/internal/model"
)

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, (&m).startSessionRestore())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case spinner.TickMsg:
		if !m.restoring && !m.anyBusy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionRestoredMsg:
		m.restoring = false
		m.user = msg.user
		if m.user == nil {
			m.view = viewLogin
			(&m).focusAuthField(authFieldEmail)
			return m, nil
		}
		m.view = viewBrowse
		return m, (&m).startGigFetch("")

	case authDoneMsg:
		m.authBusy = false
		if msg.err != "" {
			m.authErr = msg.err
			return m, nil
		}
		m.user = &msg.user
		(&m).resetAuthForm()
		m.view = viewBrowse
		return m, (&m).startGigFetch("")

	case gigsLoadedMsg:
		// A newer fetch has been issued since; this snapshot is obsolete.
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.gigsLoading = false
		if msg.err != "" {
			m.gigsErr = msg.err
			return m, nil
		}
		m.gigsErr = ""
		(&m).setGigs(msg.gigs)
		m.fetchedEpoch = msg.epoch
		// The epoch may have advanced while this fetch was in flight.
		if m.gigsStale() {
			return m, (&m).startGigFetch(m.activeSearch)
		}
		return m, nil

	case gigCreatedMsg:
		m.createBusy = false
		if msg.err != "" {
			// Leave the form intact for correction.
			m.createErr = msg.err
			return m, nil
		}
		(&m).resetCreateForm()
		m.view = viewBrowse
		(&m).markGigsStale()
		return m, (&m).refetchGigsIfStale()

	case bidSubmittedMsg:
		m.bidBusy = false
		if msg.err != "" {
			// Keep the modal open for retry.
			m.bidErr = msg.err
			return m, nil
		}
		(&m).closeModal()
		(&m).markGigsStale()
		return m, (&m).refetchGigsIfStale()

	case bidsLoadedMsg:
		if msg.gigID != m.bidListGigID {
			return m, nil
		}
		m.bidsLoading = false
		if msg.err != "" {
			m.bidsErr = msg.err
			return m, nil
		}
		m.bidsErr = ""
		(&m).setBids(msg.gig, msg.bids)
		return m, nil

	case hireDoneMsg:
		if msg.bidID == m.hiringBidID {
			m.hiringBidID = ""
			(&m).refreshBidItems()
		}
		if msg.err != "" {
			// Bids keep their last-known state; just surface the message.
			if m.modal == modalBidList || m.modal == modalConfirmHire {
				m.bidsErr = msg.err
			}
			return m, nil
		}
		(&m).markGigsStale()
		var cmds []tea.Cmd
		// Refetch the bid snapshot to observe the server-side rejection of
		// sibling bids; the client never marks them rejected locally.
		if (m.modal == modalBidList || m.modal == modalConfirmHire) && m.bidListGigID != "" {
			cmds = append(cmds, (&m).startBidFetch(m.bidListGigID))
		}
		if cmd := (&m).refetchGigsIfStale(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.restoring {
			return m, nil
		}
		switch m.modal {
		case modalBidForm:
			return m.updateBidFormKeys(msg)
		case modalBidList:
			return m.updateBidListKeys(msg)
		case modalConfirmHire:
			return m.updateConfirmHireKeys(msg)
		}
		switch m.view {
		case viewLogin, viewRegister:
			return m.updateAuthKeys(msg)
		case viewBrowse:
			return m.updateBrowseKeys(msg)
		case viewCreateGig:
			return m.updateCreateKeys(msg)
		}
	}

	return m, nil
}

func (m appModel) anyBusy() bool {
	return m.authBusy || m.gigsLoading || m.createBusy || m.bidBusy || m.bidsLoading || m.hiringBidID != ""
}

// refetchGigsIfStale issues a fetch with the active search term when the
// snapshot's epoch lags, unless one is already in flight (the in-flight
// handler re-checks staleness when it lands).
func (m *appModel) refetchGigsIfStale() tea.Cmd {
	if !m.gigsStale() || m.gigsLoading {
		return nil
	}
	return m.startGigFetch(m.activeSearch)
}

func (m appModel) updateAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	register := m.view == viewRegister

	switch msg.String() {
	case "tab", "down":
		(&m).focusAuthField(m.nextAuthField(1))
		return m, nil
	case "shift+tab", "up":
		(&m).focusAuthField(m.nextAuthField(-1))
		return m, nil
	case "ctrl+t":
		// Toggle between login and register, mirroring the "switch" link.
		if register {
			m.view = viewLogin
		} else {
			m.view = viewRegister
		}
		(&m).resetAuthForm()
		if m.view == viewRegister {
			(&m).focusAuthField(authFieldName)
		} else {
			(&m).focusAuthField(authFieldEmail)
		}
		return m, nil
	case "enter":
		if m.authBusy {
			return m, nil
		}
		name := strings.TrimSpace(m.nameInput.Value())
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if register && name == "" {
			m.authErr = "Name is required"
			return m, nil
		}
		if email == "" || password == "" {
			m.authErr = "Email and password are required"
			return m, nil
		}
		if register {
			return m, (&m).startRegister(name, email, password)
		}
		return m, (&m).startLogin(email, password)
	}

	var cmd tea.Cmd
	switch m.authFocus {
	case authFieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case authFieldEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case authFieldPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) nextAuthField(dir int) authField {
	fields := []authField{authFieldEmail, authFieldPassword}
	if m.view == viewRegister {
		fields = []authField{authFieldName, authFieldEmail, authFieldPassword}
	}
	cur := 0
	for i, f := range fields {
		if f == m.authFocus {
			cur = i
			break
		}
	}
	next := (cur + dir + len(fields)) % len(fields)
	return fields[next]
}

func (m *appModel) focusAuthField(f authField) {
	m.authFocus = f
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()
	switch f {
	case authFieldName:
		m.nameInput.Focus()
	case authFieldEmail:
		m.emailInput.Focus()
	case authFieldPassword:
		m.passwordInput.Focus()
	}
}

func (m appModel) updateBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "enter":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, (&m).startGigFetch(strings.TrimSpace(m.searchInput.Value()))
		case "esc":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil
	case "c":
		// Clear an active search.
		if m.activeSearch != "" {
			m.searchInput.SetValue("")
			return m, (&m).startGigFetch("")
		}
		return m, nil
	case "r":
		if m.gigsLoading {
			return m, nil
		}
		return m, (&m).startGigFetch(m.activeSearch)
	case "n":
		(&m).resetCreateForm()
		(&m).focusCreateField(createFieldTitle)
		m.view = viewCreateGig
		return m, nil
	case "x":
		// Sign out is synchronous and local; no round trip gates the UI.
		m.sess.Logout(context.Background())
		(&m).resetToLoggedOut()
		return m, nil
	case "b":
		if gig, ok := m.selectedGig(); ok && model.CanBid(m.user, gig) {
			return m.openBidForm(gig)
		}
		return m, nil
	case "v":
		if gig, ok := m.selectedGig(); ok && model.CanViewBids(m.user, gig) {
			return m.openBidList(gig.ID)
		}
		return m, nil
	case "enter":
		// Context action, mirroring the card button: owners view bids,
		// everyone else bids on open gigs.
		gig, ok := m.selectedGig()
		if !ok {
			return m, nil
		}
		if model.CanViewBids(m.user, gig) {
			return m.openBidList(gig.ID)
		}
		if model.CanBid(m.user, gig) {
			return m.openBidForm(gig)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.gigsList, cmd = m.gigsList.Update(msg)
	return m, cmd
}

// openBidForm requires a selected open gig and a logged-in non-owner; the
// caller checks the gate.
func (m appModel) openBidForm(gig model.Gig) (tea.Model, tea.Cmd) {
	(&m).openModal(modalBidForm)
	m.bidGig = gig
	(&m).focusBidField(bidFieldMessage)
	return m, nil
}

func (m appModel) openBidList(gigID string) (tea.Model, tea.Cmd) {
	(&m).openModal(modalBidList)
	m.bidListGigID = gigID
	return m, (&m).startBidFetch(gigID)
}

func (m *appModel) resetToLoggedOut() {
	m.closeModal()
	m.user = nil
	m.gigs = nil
	m.gigsList.SetItems(nil)
	m.gigsErr = ""
	m.gigsLoading = false
	m.activeSearch = ""
	m.searchFocused = false
	m.searchInput.SetValue("")
	m.gigListEpoch = 0
	m.fetchedEpoch = 0
	m.resetCreateForm()
	m.resetAuthForm()
	m.view = viewLogin
	m.focusAuthField(authFieldEmail)
}

func (m appModel) updateCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		(&m).resetCreateForm()
		m.view = viewBrowse
		return m, nil
	case "tab":
		(&m).focusCreateField((m.createFocus + 1) % 3)
		return m, nil
	case "shift+tab":
		(&m).focusCreateField((m.createFocus + 2) % 3)
		return m, nil
	case "ctrl+s":
		if m.createBusy {
			return m, nil
		}
		title := strings.TrimSpace(m.titleInput.Value())
		description := strings.TrimSpace(m.descArea.Value())
		if title == "" {
			m.createErr = "Title is required"
			return m, nil
		}
		budget, ok := parsePositiveAmount(m.budgetInput.Value())
		if !ok {
			m.createErr = "Budget must be a positive number"
			return m, nil
		}
		if description == "" {
			m.createErr = "Description is required"
			return m, nil
		}
		return m, (&m).startCreateGig(title, description, budget)
	}

	var cmd tea.Cmd
	switch m.createFocus {
	case createFieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case createFieldBudget:
		m.budgetInput, cmd = m.budgetInput.Update(msg)
	case createFieldDescription:
		m.descArea, cmd = m.descArea.Update(msg)
	}
	return m, cmd
}

func (m *appModel) focusCreateField(f createField) {
	m.createFocus = f
	m.titleInput.Blur()
	m.budgetInput.Blur()
	m.descArea.Blur()
	switch f {
	case createFieldTitle:
		m.titleInput.Focus()
	case createFieldBudget:
		m.budgetInput.Focus()
	case createFieldDescription:
		m.descArea.Focus()
	}
}

func (m appModel) updateBidFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		(&m).closeModal()
		return m, nil
	case "tab", "shift+tab":
		if m.bidFocus == bidFieldMessage {
			(&m).focusBidField(bidFieldPrice)
		} else {
			(&m).focusBidField(bidFieldMessage)
		}
		return m, nil
	case "ctrl+s":
		// Busy flag gates re-entry at the action granularity.
		if m.bidBusy {
			return m, nil
		}
		price, ok := parsePositiveAmount(m.bidPriceInput.Value())
		if !ok {
			m.bidErr = "Price must be a positive number"
			return m, nil
		}
		message := strings.TrimSpace(m.bidMsgArea.Value())
		if message == "" {
			m.bidErr = "Message is required"
			return m, nil
		}
		return m, (&m).startSubmitBid(m.bidGig.ID, message, price)
	}

	var cmd tea.Cmd
	switch m.bidFocus {
	case bidFieldMessage:
		m.bidMsgArea, cmd = m.bidMsgArea.Update(msg)
	case bidFieldPrice:
		m.bidPriceInput, cmd = m.bidPriceInput.Update(msg)
	}
	return m, cmd
}

func (m *appModel) focusBidField(f bidFormField) {
	m.bidFocus = f
	m.bidMsgArea.Blur()
	m.bidPriceInput.Blur()
	switch f {
	case bidFieldMessage:
		m.bidMsgArea.Focus()
	case bidFieldPrice:
		m.bidPriceInput.Focus()
	}
}

func (m appModel) updateBidListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		(&m).closeModal()
		return m, nil
	case "r":
		if m.bidsLoading || m.bidListGigID == "" {
			return m, nil
		}
		return m, (&m).startBidFetch(m.bidListGigID)
	case "enter", "h":
		bid, ok := m.selectedBid()
		if !ok || m.bidListGig == nil {
			return m, nil
		}
		// Only the targeted bid is gated while a hire is in flight.
		if m.hiringBidID == bid.ID {
			return m, nil
		}
		if !model.CanHire(bid, *m.bidListGig) {
			return m, nil
		}
		// Hiring is irreversible and rejects all sibling bids; ask first.
		m.modal = modalConfirmHire
		m.confirmBid = bid
		m.confirmFocus = confirmFocusConfirm
		return m, nil
	}

	var cmd tea.Cmd
	m.bidsList, cmd = m.bidsList.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmHireKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	back := func() (tea.Model, tea.Cmd) {
		// Back to the bid list with its snapshot untouched.
		m.modal = modalBidList
		m.confirmBid = model.Bid{}
		m.confirmFocus = confirmFocusConfirm
		return m, nil
	}

	switch msg.String() {
	case "esc", "n", "ctrl+g":
		return back()
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.confirmHire()
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			return back()
		}
		return m.confirmHire()
	}
	return m, nil
}

func (m appModel) confirmHire() (tea.Model, tea.Cmd) {
	bid := m.confirmBid
	m.modal = modalBidList
	m.confirmBid = model.Bid{}
	m.confirmFocus = confirmFocusConfirm
	// Gate re-entry per bid, not globally: other bids stay interactive
	// while this one's round trip is in flight.
	if bid.ID == "" || m.hiringBidID == bid.ID {
		return m, nil
	}
	cmd := (&m).startHire(bid.ID)
	(&m).refreshBidItems()
	return m, cmd
}
