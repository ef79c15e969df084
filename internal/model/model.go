package model

import "time"

// User is the authenticated identity of the current client, or the public
// profile embedded in gigs and bids (owner, freelancer).
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GigStatus string

const (
	GigOpen     GigStatus = "open"
	GigAssigned GigStatus = "assigned"
	GigClosed   GigStatus = "closed"
)

// Gig is a posted job. The server owns it; the client only ever holds a
// possibly-stale snapshot refreshed on demand.
type Gig struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Status      GigStatus `json:"status"`
	Owner       User      `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (g Gig) IsOpen() bool { return g.Status == GigOpen }

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidHired    BidStatus = "hired"
	BidRejected BidStatus = "rejected"
)

// Bid is a freelancer's offer against a gig. Status transitions are one-way
// and enforced remotely: pending -> hired (via hire) or pending -> rejected
// (via a sibling's hire). The client observes both only through refetch.
type Bid struct {
	ID         string    `json:"id"`
	GigID      string    `json:"gigId"`
	Freelancer User      `json:"freelancer"`
	Message    string    `json:"message"`
	Price      float64   `json:"price"`
	Status     BidStatus `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CanHire reports whether the hire action may be offered for bid: the bid is
// still pending and its parent gig has not been assigned or closed.
func CanHire(bid Bid, gig Gig) bool {
	return bid.Status == BidPending && gig.IsOpen()
}

// CanBid reports whether user may submit a bid on gig: logged in, not the
// owner, and the gig is still open.
func CanBid(user *User, gig Gig) bool {
	if user == nil {
		return false
	}
	return user.ID != gig.Owner.ID && gig.IsOpen()
}

// CanViewBids reports whether user may open the bid list for gig. Only the
// gig's owner sees its bids.
func CanViewBids(user *User, gig Gig) bool {
	if user == nil {
		return false
	}
	return user.ID == gig.Owner.ID
}
