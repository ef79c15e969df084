package tui

import (
	"gigflow-cli/internal/model"
)

type view int

const (
	viewLoading view = iota
	viewLogin
	viewRegister
	viewBrowse
	viewCreateGig
)

// modalKind is the tagged variant for the browse view's overlay. At most one
// modal is active at a time; opening one implicitly closes any other.
type modalKind int

const (
	modalNone modalKind = iota
	modalBidForm
	modalBidList
	modalConfirmHire
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type authField int

const (
	authFieldName authField = iota
	authFieldEmail
	authFieldPassword
)

type createField int

const (
	createFieldTitle createField = iota
	createFieldBudget
	createFieldDescription
)

type bidFormField int

const (
	bidFieldMessage bidFormField = iota
	bidFieldPrice
)

// Messages delivered back into Update when an asynchronous round trip
// resolves. Every command that sets a busy flag produces exactly one of
// these on both the success and the failure path, so the flag is always
// cleared.

type sessionRestoredMsg struct {
	user *model.User
}

type authDoneMsg struct {
	user model.User
	err  string
}

type gigsLoadedMsg struct {
	seq   int
	epoch int
	gigs  []model.Gig
	err   string
}

type gigCreatedMsg struct {
	gig model.Gig
	err string
}

type bidSubmittedMsg struct {
	bid model.Bid
	err string
}

type bidsLoadedMsg struct {
	gigID string
	gig   model.Gig
	bids  []model.Bid
	err   string
}

type hireDoneMsg struct {
	bidID string
	err   string
}
