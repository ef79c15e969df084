// Package api is the typed client for the GigFlow REST backend. It owns no
// state beyond the HTTP client and cookie jar: every response is decoded into
// the domain types and handed to the caller, which decides what to keep.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gigflow-cli/internal/model"
)

// ErrUnauthorized is returned by Me when the identity endpoint explicitly
// rejects the session (HTTP 401). Callers must distinguish it from transport
// failures: a 401 means "logged out", anything else means "unknown".
var ErrUnauthorized = errors.New("unauthorized")

// Error is a remote rejection (non-2xx) carrying the human-readable message
// from the response body, or a generic per-operation fallback when the body
// has none.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

type Client struct {
	base  *url.URL
	httpc *http.Client
}

// NewClient builds a client for the backend at baseURL. jar carries the
// ambient session cookie; pass nil for a cookie-less client.
func NewClient(baseURL string, timeout time.Duration, jar http.CookieJar) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api.NewClient: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api.NewClient: invalid base URL %q", baseURL)
	}
	return &Client{
		base:  u,
		httpc: &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

func (c *Client) BaseURL() *url.URL { return c.base }

// Wire shapes. The backend wraps payloads in a success envelope and uses
// Mongo-style "_id" keys; these stay private to this package.
type wireUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (w wireUser) toModel() model.User {
	return model.User{ID: w.ID, Name: w.Name, Email: w.Email}
}

type wireGig struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Status      string    `json:"status"`
	Owner       wireUser  `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (w wireGig) toModel() model.Gig {
	return model.Gig{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Budget:      w.Budget,
		Status:      model.GigStatus(w.Status),
		Owner:       w.Owner.toModel(),
		CreatedAt:   w.CreatedAt,
	}
}

type wireBid struct {
	ID         string          `json:"_id"`
	GigID      json.RawMessage `json:"gigId"`
	Freelancer wireUser        `json:"freelancerId"`
	Message    string          `json:"message"`
	Price      float64         `json:"price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// gigRef extracts the parent gig id. The backend sometimes populates gigId
// as a full gig document and sometimes as a bare id string.
func (w wireBid) gigRef() string {
	raw := bytes.TrimSpace(w.GigID)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return ""
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}

func (w wireBid) toModel() model.Bid {
	return model.Bid{
		ID:         w.ID,
		GigID:      w.gigRef(),
		Freelancer: w.Freelancer.toModel(),
		Message:    w.Message,
		Price:      w.Price,
		Status:     model.BidStatus(w.Status),
		CreatedAt:  w.CreatedAt,
	}
}

func (c *Client) Register(ctx context.Context, name, email, password string) (model.User, error) {
	var out struct {
		User wireUser `json:"user"`
	}
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &out, "Registration failed"); err != nil {
		return model.User{}, err
	}
	return out.User.toModel(), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	var out struct {
		User wireUser `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &out, "Login failed"); err != nil {
		return model.User{}, err
	}
	return out.User.toModel(), nil
}

// Me verifies the ambient session cookie against the identity endpoint.
// A 401 maps to ErrUnauthorized; any other failure (missing endpoint,
// transport error) is returned as-is so callers can fall back to cached
// identity.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out struct {
		User wireUser `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out, "Identity check failed")
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return model.User{}, ErrUnauthorized
		}
		return model.User{}, err
	}
	return out.User.toModel(), nil
}

// ListGigs fetches the server-filtered gig snapshot. search narrows by title
// substring; empty fetches everything. The returned order is the server's.
func (c *Client) ListGigs(ctx context.Context, search string) ([]model.Gig, error) {
	var out struct {
		Count int       `json:"count"`
		Gigs  []wireGig `json:"gigs"`
	}
	var q url.Values
	if strings.TrimSpace(search) != "" {
		q = url.Values{"search": []string{search}}
	}
	if err := c.do(ctx, http.MethodGet, "/api/gigs", q, nil, &out, "Failed to fetch gigs"); err != nil {
		return nil, err
	}
	gigs := make([]model.Gig, 0, len(out.Gigs))
	for _, g := range out.Gigs {
		gigs = append(gigs, g.toModel())
	}
	return gigs, nil
}

func (c *Client) CreateGig(ctx context.Context, title, description string, budget float64) (model.Gig, error) {
	var out struct {
		Gig wireGig `json:"gig"`
	}
	body := map[string]any{"title": title, "description": description, "budget": budget}
	if err := c.do(ctx, http.MethodPost, "/api/gigs", nil, body, &out, "Failed to create gig"); err != nil {
		return model.Gig{}, err
	}
	return out.Gig.toModel(), nil
}

func (c *Client) SubmitBid(ctx context.Context, gigID, message string, price float64) (model.Bid, error) {
	var out struct {
		Bid wireBid `json:"bid"`
	}
	body := map[string]any{"gigId": gigID, "message": message, "price": price}
	if err := c.do(ctx, http.MethodPost, "/api/bids", nil, body, &out, "Failed to submit bid"); err != nil {
		return model.Bid{}, err
	}
	return out.Bid.toModel(), nil
}

// BidsForGig returns the current bid snapshot together with the parent gig
// summary. Callable repeatedly; after a hire it reflects the server-side
// rejection of sibling bids.
func (c *Client) BidsForGig(ctx context.Context, gigID string) (model.Gig, []model.Bid, error) {
	var out struct {
		Count int       `json:"count"`
		Gig   wireGig   `json:"gig"`
		Bids  []wireBid `json:"bids"`
	}
	path := "/api/bids/" + url.PathEscape(gigID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out, "Failed to fetch bids"); err != nil {
		return model.Gig{}, nil, err
	}
	bids := make([]model.Bid, 0, len(out.Bids))
	for _, b := range out.Bids {
		bids = append(bids, b.toModel())
	}
	return out.Gig.toModel(), bids, nil
}

// Hire selects the bid as the winner. The transition is remote and one-way;
// sibling rejections are only visible through a subsequent BidsForGig.
func (c *Client) Hire(ctx context.Context, bidID string) (model.Bid, error) {
	var out struct {
		Bid wireBid `json:"bid"`
	}
	path := "/api/bids/" + url.PathEscape(bidID) + "/hire"
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &out, "Failed to hire freelancer"); err != nil {
		return model.Bid{}, err
	}
	return out.Bid.toModel(), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, fallback string) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("api: %s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(raw, fallback)}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: %s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// errorMessage pulls the backend's {message} out of an error body, falling
// back to the per-operation generic when absent or undecodable.
func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
	}
	return fallback
}
