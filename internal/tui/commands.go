package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Async round trips, in the same shape throughout: the caller flips the busy
// flag before returning the command, the command resolves to exactly one
// message, and the message handler clears the flag on both outcomes.

const requestTimeout = 30 * time.Second

func (m *appModel) startSessionRestore() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return sessionRestoredMsg{user: sess.Restore(ctx)}
	}
}

func (m *appModel) startLogin(email, password string) tea.Cmd {
	m.authBusy = true
	m.authErr = ""
	sess := m.sess

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		u, err := sess.Login(ctx, email, password)
		if err != nil {
			return authDoneMsg{err: err.Error()}
		}
		return authDoneMsg{user: u}
	}
}

func (m *appModel) startRegister(name, email, password string) tea.Cmd {
	m.authBusy = true
	m.authErr = ""
	sess := m.sess

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		u, err := sess.Register(ctx, name, email, password)
		if err != nil {
			return authDoneMsg{err: err.Error()}
		}
		return authDoneMsg{user: u}
	}
}

// startGigFetch issues a fresh snapshot fetch for search. The seq guard makes
// superseded responses inert; the epoch captured here records how current the
// snapshot will be once it lands.
func (m *appModel) startGigFetch(search string) tea.Cmd {
	m.gigsLoading = true
	m.gigsErr = ""
	m.activeSearch = search
	m.fetchSeq++
	seq := m.fetchSeq
	epoch := m.gigListEpoch
	client := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		gigs, err := client.ListGigs(ctx, search)
		out := gigsLoadedMsg{seq: seq, epoch: epoch, gigs: gigs}
		if err != nil {
			out.err = err.Error()
		}
		return out
	}
}

func (m *appModel) startCreateGig(title, description string, budget float64) tea.Cmd {
	m.createBusy = true
	m.createErr = ""
	client := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		gig, err := client.CreateGig(ctx, title, description, budget)
		if err != nil {
			return gigCreatedMsg{err: err.Error()}
		}
		return gigCreatedMsg{gig: gig}
	}
}

func (m *appModel) startSubmitBid(gigID, message string, price float64) tea.Cmd {
	m.bidBusy = true
	m.bidErr = ""
	client := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		bid, err := client.SubmitBid(ctx, gigID, message, price)
		if err != nil {
			return bidSubmittedMsg{err: err.Error()}
		}
		return bidSubmittedMsg{bid: bid}
	}
}

func (m *appModel) startBidFetch(gigID string) tea.Cmd {
	m.bidsLoading = true
	m.bidsErr = ""
	client := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		gig, bids, err := client.BidsForGig(ctx, gigID)
		out := bidsLoadedMsg{gigID: gigID, gig: gig, bids: bids}
		if err != nil {
			out.err = err.Error()
		}
		return out
	}
}

func (m *appModel) startHire(bidID string) tea.Cmd {
	m.hiringBidID = bidID
	client := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := client.Hire(ctx, bidID); err != nil {
			return hireDoneMsg{bidID: bidID, err: err.Error()}
		}
		return hireDoneMsg{bidID: bidID}
	}
}
