// Package session resolves and owns the current-user identity: a fast local
// cache reconciled against the authoritative remote identity endpoint.
package session

import (
	"context"
	"errors"

	"gigflow-cli/internal/api"
	"gigflow-cli/internal/model"
)

// Manager owns the in-memory session. It is mutated only by its owner (the
// TUI update loop or a single CLI invocation); it is not safe for concurrent
// writers.
type Manager struct {
	cache Cache
	api   *api.Client
	user  *model.User
}

func NewManager(cache Cache, client *api.Client) *Manager {
	return &Manager{cache: cache, api: client}
}

// Current returns the in-memory session user, or nil when logged out.
func (m *Manager) Current() *model.User { return m.user }

// Restore resolves the startup identity. The cached user is the fast path;
// the remote identity endpoint is authoritative when it answers.
//
//   - no/corrupted cache: logged out.
//   - cache + verified identity: the verified user replaces the cache.
//   - cache + explicit 401: logged out, cache cleared.
//   - cache + any other failure (endpoint missing, network): the cached user
//     is trusted. The session cookie is validated by the next protected call
//     anyway, so an unreachable verify endpoint must not log the user out.
func (m *Manager) Restore(ctx context.Context) *model.User {
	cached, err := m.cache.LoadUser(ctx)
	if err != nil || cached == nil {
		m.user = nil
		return nil
	}

	// Provisional until verified.
	m.user = cached

	verified, err := m.api.Me(ctx)
	if err == nil {
		m.user = &verified
		_ = m.cache.SaveUser(ctx, verified)
		return m.user
	}
	if errors.Is(err, api.ErrUnauthorized) {
		m.user = nil
		_ = m.cache.ClearUser(ctx)
		m.cache.clearCookies(ctx)
		return nil
	}
	return m.user
}

func (m *Manager) Login(ctx context.Context, email, password string) (model.User, error) {
	u, err := m.api.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	m.user = &u
	_ = m.cache.SaveUser(ctx, u)
	return u, nil
}

func (m *Manager) Register(ctx context.Context, name, email, password string) (model.User, error) {
	u, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		return model.User{}, err
	}
	m.user = &u
	_ = m.cache.SaveUser(ctx, u)
	return u, nil
}

// Logout clears the session synchronously: memory first, then the persisted
// slots. No network round trip is required before the UI reflects the
// logged-out state.
func (m *Manager) Logout(ctx context.Context) {
	m.user = nil
	_ = m.cache.ClearUser(ctx)
	m.cache.clearCookies(ctx)
}
