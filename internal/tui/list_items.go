package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"gigflow-cli/internal/model"
)

type gigItem struct {
	gig  model.Gig
	user *model.User
}

func (i gigItem) FilterValue() string { return i.gig.Title }

func (i gigItem) Title() string {
	return fmt.Sprintf("%s  %s", i.gig.Title, formatMoney(i.gig.Budget))
}

func (i gigItem) Description() string {
	action := gigActionLabel(i.user, i.gig)
	return fmt.Sprintf("[%s] by %s · %s · %s", i.gig.Status, i.gig.Owner.Name, formatDate(i.gig.CreatedAt), action)
}

// gigActionLabel mirrors the per-card action: owners see their bids, other
// users may bid while the gig is open, everyone else sees the status label.
func gigActionLabel(user *model.User, gig model.Gig) string {
	switch {
	case model.CanViewBids(user, gig):
		return "v: view bids"
	case model.CanBid(user, gig):
		return "b: submit bid"
	case gig.Status == model.GigAssigned:
		return "Assigned"
	case gig.Status == model.GigClosed:
		return "Closed"
	default:
		return string(gig.Status)
	}
}

type bidItem struct {
	bid model.Bid
	gig model.Gig
	// hiring marks the one bid with a hire round trip in flight.
	hiring bool
}

func (i bidItem) FilterValue() string { return i.bid.Freelancer.Name }

func (i bidItem) Title() string {
	if i.hiring {
		return fmt.Sprintf("%s — %s  hiring…", i.bid.Freelancer.Name, formatMoney(i.bid.Price))
	}
	return fmt.Sprintf("%s — %s  [%s]", i.bid.Freelancer.Name, formatMoney(i.bid.Price), i.bid.Status)
}

func (i bidItem) Description() string {
	msg := strings.TrimSpace(i.bid.Message)
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx] + "…"
	}
	if model.CanHire(i.bid, i.gig) {
		return msg + " · enter: hire"
	}
	return msg
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header and footer; keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("gig", "gigs")
	// The list defaults to quitting on ESC; here ESC means back/cancel.
	l.KeyMap.Quit.SetKeys("q")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
