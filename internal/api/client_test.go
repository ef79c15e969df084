package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"", "not-a-url", "/just/a/path"} {
		if _, err := NewClient(base, time.Second, nil); err == nil {
			t.Fatalf("NewClient(%q): expected error", base)
		}
	}
}

func TestListGigs_SearchParam(t *testing.T) {
	t.Parallel()

	var gotSearch string
	var hasSearch bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/gigs" {
			t.Errorf("path = %q; want /api/gigs", r.URL.Path)
		}
		gotSearch = r.URL.Query().Get("search")
		hasSearch = r.URL.Query().Has("search")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"count":0,"gigs":[]}`))
	}))

	if _, err := c.ListGigs(context.Background(), "logo design"); err != nil {
		t.Fatalf("ListGigs: %v", err)
	}
	if gotSearch != "logo design" {
		t.Fatalf("search param = %q; want %q", gotSearch, "logo design")
	}

	if _, err := c.ListGigs(context.Background(), "   "); err != nil {
		t.Fatalf("ListGigs (blank search): %v", err)
	}
	if hasSearch {
		t.Fatalf("blank search should omit the query param entirely")
	}
}

func TestListGigs_DecodesEnvelope(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"count":1,"gigs":[{
			"_id":"g1","title":"Build an API","description":"REST please",
			"budget":4500,"status":"open",
			"ownerId":{"_id":"u1","name":"Ann","email":"ann@example.com"},
			"createdAt":"2025-03-01T12:00:00Z"
		}]}`))
	}))

	gigs, err := c.ListGigs(context.Background(), "")
	if err != nil {
		t.Fatalf("ListGigs: %v", err)
	}
	if len(gigs) != 1 {
		t.Fatalf("len(gigs) = %d; want 1", len(gigs))
	}
	g := gigs[0]
	if g.ID != "g1" || g.Title != "Build an API" || g.Budget != 4500 {
		t.Fatalf("unexpected gig: %+v", g)
	}
	if g.Owner.ID != "u1" || g.Owner.Name != "Ann" {
		t.Fatalf("owner not decoded from ownerId: %+v", g.Owner)
	}
	if !g.IsOpen() {
		t.Fatalf("status = %q; want open", g.Status)
	}
}

func TestMe_Unauthorized(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not authenticated"}`, http.StatusUnauthorized)
	}))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Me error = %v; want ErrUnauthorized", err)
	}
}

func TestMe_NonAuthFailureIsNotUnauthorized(t *testing.T) {
	t.Parallel()

	// A missing endpoint must stay distinguishable from an explicit 401 so
	// session restore can keep trusting the cache.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("Me: expected error")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("404 must not map to ErrUnauthorized: %v", err)
	}
}

func TestErrorMessage_BodyAndFallback(t *testing.T) {
	t.Parallel()

	t.Run("body message wins", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		}))
		_, err := c.Login(context.Background(), "a@x.com", "nope")
		if err == nil || err.Error() != "Invalid credentials" {
			t.Fatalf("err = %v; want Invalid credentials", err)
		}
	})

	t.Run("fallback on undecodable body", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>bad gateway</html>`))
		}))
		_, err := c.Login(context.Background(), "a@x.com", "pw")
		if err == nil || err.Error() != "Login failed" {
			t.Fatalf("err = %v; want Login failed", err)
		}
	})

	t.Run("fallback on blank message", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"   "}`))
		}))
		_, err := c.ListGigs(context.Background(), "")
		if err == nil || err.Error() != "Failed to fetch gigs" {
			t.Fatalf("err = %v; want Failed to fetch gigs", err)
		}
	})
}

func TestHire_MethodAndPath(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"bid":{
			"_id":"b1","gigId":"g1",
			"freelancerId":{"_id":"u2","name":"Bob","email":"bob@example.com"},
			"message":"hi","price":1200,"status":"hired",
			"createdAt":"2025-03-02T09:30:00Z"
		}}`))
	}))

	bid, err := c.Hire(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Hire: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("method = %q; want PATCH", gotMethod)
	}
	if gotPath != "/api/bids/b1/hire" {
		t.Fatalf("path = %q; want /api/bids/b1/hire", gotPath)
	}
	if bid.Status != "hired" || bid.GigID != "g1" {
		t.Fatalf("unexpected bid: %+v", bid)
	}
}

func TestBidsForGig_GigRefShapes(t *testing.T) {
	t.Parallel()

	// The backend populates gigId as a full document on some routes and as a
	// bare id string on others; both must resolve to the same reference.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bids/g1" {
			t.Errorf("path = %q; want /api/bids/g1", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"count":2,
			"gig":{"_id":"g1","title":"T","description":"D","budget":100,"status":"open",
				"ownerId":{"_id":"u1","name":"Ann","email":"a@x.com"},
				"createdAt":"2025-03-01T12:00:00Z"},
			"bids":[
				{"_id":"b1","gigId":{"_id":"g1","title":"T"},
				 "freelancerId":{"_id":"u2","name":"Bob","email":"b@x.com"},
				 "message":"m1","price":90,"status":"pending","createdAt":"2025-03-01T13:00:00Z"},
				{"_id":"b2","gigId":"g1",
				 "freelancerId":{"_id":"u3","name":"Cid","email":"c@x.com"},
				 "message":"m2","price":95,"status":"pending","createdAt":"2025-03-01T14:00:00Z"}
			]}`))
	}))

	gig, bids, err := c.BidsForGig(context.Background(), "g1")
	if err != nil {
		t.Fatalf("BidsForGig: %v", err)
	}
	if gig.ID != "g1" {
		t.Fatalf("gig.ID = %q; want g1", gig.ID)
	}
	if len(bids) != 2 {
		t.Fatalf("len(bids) = %d; want 2", len(bids))
	}
	for _, b := range bids {
		if b.GigID != "g1" {
			t.Fatalf("bid %s GigID = %q; want g1", b.ID, b.GigID)
		}
	}
}

func TestSubmitBid_SendsBody(t *testing.T) {
	t.Parallel()

	var gotCT string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		if r.Method != http.MethodPost || r.URL.Path != "/api/bids" {
			t.Errorf("%s %s; want POST /api/bids", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"bid":{
			"_id":"b9","gigId":"g1",
			"freelancerId":{"_id":"u2","name":"Bob","email":"b@x.com"},
			"message":"I can do this","price":80,"status":"pending",
			"createdAt":"2025-03-02T09:30:00Z"
		}}`))
	}))

	bid, err := c.SubmitBid(context.Background(), "g1", "I can do this", 80)
	if err != nil {
		t.Fatalf("SubmitBid: %v", err)
	}
	if gotCT != "application/json" {
		t.Fatalf("Content-Type = %q; want application/json", gotCT)
	}
	if bid.ID != "b9" || bid.Status != "pending" {
		t.Fatalf("unexpected bid: %+v", bid)
	}
}
