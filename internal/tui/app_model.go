package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"gigflow-cli/internal/api"
	"gigflow-cli/internal/model"
	"gigflow-cli/internal/session"
)

type appModel struct {
	sess *session.Manager
	api  *api.Client

	width  int
	height int

	view view
	user *model.User

	// restoring is true until the startup session resolution finishes; no
	// interactive content renders while it is set.
	restoring bool
	spin      spinner.Model

	// Auth forms (login/register).
	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	authFocus     authField
	authBusy      bool
	authErr       string

	// Browse view.
	searchInput   textinput.Model
	searchFocused bool
	gigsList      list.Model
	gigs          []model.Gig
	gigsLoading   bool
	gigsErr       string
	// activeSearch is the term the current gig snapshot was fetched with;
	// post-mutation refreshes reuse it.
	activeSearch string
	// gigListEpoch advances whenever a mutation (create gig, hire) makes the
	// snapshot stale; fetchedEpoch records the epoch the last completed fetch
	// was issued under. fetchedEpoch < gigListEpoch means "refetch".
	gigListEpoch int
	fetchedEpoch int
	// fetchSeq drops responses from superseded fetches so an older round
	// trip can never overwrite a newer snapshot.
	fetchSeq int

	// Create gig form.
	titleInput  textinput.Model
	budgetInput textinput.Model
	descArea    textarea.Model
	createFocus createField
	createBusy  bool
	createErr   string

	modal modalKind

	// Bid submission modal.
	bidGig        model.Gig
	bidMsgArea    textarea.Model
	bidPriceInput textinput.Model
	bidFocus      bidFormField
	bidBusy       bool
	bidErr        string

	// Bid list modal. bids and bidListGig are a snapshot scoped to one gig,
	// refetched together (also after a hire, to observe sibling rejection).
	bidListGigID string
	bidListGig   *model.Gig
	bids         []model.Bid
	bidsList     list.Model
	bidsLoading  bool
	bidsErr      string
	// hiringBidID marks the one bid with a hire in flight; other bids stay
	// interactive.
	hiringBidID string

	// Confirm-hire modal.
	confirmBid   model.Bid
	confirmFocus confirmModalFocus
}

func newAppModel(sess *session.Manager, client *api.Client) appModel {
	m := appModel{
		sess:      sess,
		api:       client,
		view:      viewLoading,
		restoring: true,
	}

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Name"
	m.nameInput.CharLimit = 120
	m.nameInput.Width = 40

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "Email"
	m.emailInput.CharLimit = 200
	m.emailInput.Width = 40

	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "Password"
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.CharLimit = 200
	m.passwordInput.Width = 40

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search gigs by title…"
	m.searchInput.CharLimit = 200
	m.searchInput.Width = 40

	m.gigsList = newList("Gigs", []list.Item{})
	m.bidsList = newList("Bids", []list.Item{})
	m.bidsList.SetShowStatusBar(false)
	m.bidsList.SetShowPagination(false)
	m.bidsList.SetFilteringEnabled(false)

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "e.g., Web Developer Needed"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 48

	m.budgetInput = textinput.New()
	m.budgetInput.Placeholder = "4500"
	m.budgetInput.CharLimit = 20
	m.budgetInput.Width = 16

	m.descArea = textarea.New()
	m.descArea.Placeholder = "Describe the work…"
	m.descArea.CharLimit = 0
	m.descArea.SetWidth(64)
	m.descArea.SetHeight(6)
	m.descArea.ShowLineNumbers = false

	m.bidMsgArea = textarea.New()
	m.bidMsgArea.Placeholder = "Tell the client why you're the right fit…"
	m.bidMsgArea.CharLimit = 0
	m.bidMsgArea.SetWidth(64)
	m.bidMsgArea.SetHeight(5)
	m.bidMsgArea.ShowLineNumbers = false

	m.bidPriceInput = textinput.New()
	m.bidPriceInput.Placeholder = "Price (USD)"
	m.bidPriceInput.CharLimit = 20
	m.bidPriceInput.Width = 16

	return m
}

// openModal switches the active modal, closing whatever was open first so
// two overlays can never stack.
func (m *appModel) openModal(kind modalKind) {
	if m.modal != modalNone {
		m.closeModal()
	}
	m.modal = kind
}

// closeModal returns to the plain list view and resets all transient modal
// state. A hire still in flight keeps its busy marker; the response is
// handled even if the modal was closed meanwhile.
func (m *appModel) closeModal() {
	m.modal = modalNone

	m.bidGig = model.Gig{}
	m.bidErr = ""
	m.bidFocus = bidFieldMessage
	m.bidMsgArea.SetValue("")
	m.bidMsgArea.Blur()
	m.bidPriceInput.SetValue("")
	m.bidPriceInput.Blur()

	m.bidListGigID = ""
	m.bidListGig = nil
	m.bids = nil
	m.bidsErr = ""
	m.bidsLoading = false
	m.bidsList.SetItems(nil)

	m.confirmBid = model.Bid{}
	m.confirmFocus = confirmFocusConfirm
}

// markGigsStale bumps the refresh epoch. The browse view compares it against
// fetchedEpoch and refetches when it lags, even if the visible list is
// otherwise unchanged.
func (m *appModel) markGigsStale() {
	m.gigListEpoch++
}

func (m *appModel) gigsStale() bool {
	return m.fetchedEpoch < m.gigListEpoch
}

func (m *appModel) selectedGig() (model.Gig, bool) {
	it, ok := m.gigsList.SelectedItem().(gigItem)
	if !ok {
		return model.Gig{}, false
	}
	return it.gig, true
}

func (m *appModel) selectedBid() (model.Bid, bool) {
	it, ok := m.bidsList.SelectedItem().(bidItem)
	if !ok {
		return model.Bid{}, false
	}
	return it.bid, true
}

func (m *appModel) setGigs(gigs []model.Gig) {
	curID := ""
	if it, ok := m.gigsList.SelectedItem().(gigItem); ok {
		curID = it.gig.ID
	}
	m.gigs = gigs
	items := make([]list.Item, 0, len(gigs))
	for _, g := range gigs {
		items = append(items, gigItem{gig: g, user: m.user})
	}
	m.gigsList.SetItems(items)
	if curID != "" {
		selectGigByID(&m.gigsList, curID)
	}
}

func (m *appModel) setBids(gig model.Gig, bids []model.Bid) {
	m.bidListGig = &gig
	m.bids = bids
	m.refreshBidItems()
}

// refreshBidItems rebuilds the bid rows, keeping the selection and marking
// the one bid (if any) whose hire is in flight.
func (m *appModel) refreshBidItems() {
	curID := ""
	if it, ok := m.bidsList.SelectedItem().(bidItem); ok {
		curID = it.bid.ID
	}
	gig := model.Gig{}
	if m.bidListGig != nil {
		gig = *m.bidListGig
	}
	items := make([]list.Item, 0, len(m.bids))
	for _, b := range m.bids {
		items = append(items, bidItem{bid: b, gig: gig, hiring: b.ID == m.hiringBidID})
	}
	m.bidsList.SetItems(items)
	if curID != "" {
		selectBidByID(&m.bidsList, curID)
	}
}

func (m *appModel) resetAuthForm() {
	m.nameInput.SetValue("")
	m.nameInput.Blur()
	m.emailInput.SetValue("")
	m.emailInput.Blur()
	m.passwordInput.SetValue("")
	m.passwordInput.Blur()
	m.authErr = ""
	m.authFocus = authFieldEmail
}

func (m *appModel) resetCreateForm() {
	m.titleInput.SetValue("")
	m.titleInput.Blur()
	m.budgetInput.SetValue("")
	m.budgetInput.Blur()
	m.descArea.SetValue("")
	m.descArea.Blur()
	m.createErr = ""
	m.createFocus = createFieldTitle
}

func (m *appModel) resizeLists() {
	h := m.height - 8
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	// Browse view is split: list left, gig detail right.
	m.gigsList.SetSize(w/2, h)
	m.bidsList.SetSize(modalBodyWidth(w), h-6)
}

func selectGigByID(l *list.Model, id string) {
	for i, item := range l.Items() {
		if it, ok := item.(gigItem); ok && it.gig.ID == id {
			l.Select(i)
			return
		}
	}
}

func selectBidByID(l *list.Model, id string) {
	for i, item := range l.Items() {
		if it, ok := item.(bidItem); ok && it.bid.ID == id {
			l.Select(i)
			return
		}
	}
}
