package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gigflow-cli/internal/model"

	_ "modernc.org/sqlite"
)

const (
	cacheFileName = "cache.sqlite"

	// Fixed storage keys for the two persisted slots. Last write wins;
	// there is a single writer at a time.
	userKey    = "gigflow_user"
	cookiesKey = "gigflow_cookies"
)

// Cache is the persistent local store under the gigflow dir. It holds exactly
// two key-value slots: the serialized session user and the backend cookies.
type Cache struct {
	Dir string
}

func (c Cache) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(c.Dir, cacheFileName)
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session_meta (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (c Cache) get(ctx context.Context, key string) (string, bool, error) {
	db, err := c.open(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM session_meta WHERE k = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c Cache) set(ctx context.Context, key, value string) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO session_meta(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		key, value, time.Now().UTC().UnixMilli())
	return err
}

func (c Cache) delete(ctx context.Context, key string) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM session_meta WHERE k = ?`, key)
	return err
}

// LoadUser reads the cached session user. A missing slot yields (nil, nil).
// A malformed slot is purged and also yields (nil, nil): corrupted cache is
// never a user-visible error, it just means "no session".
func (c Cache) LoadUser(ctx context.Context) (*model.User, error) {
	raw, ok, err := c.get(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("session: load user: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || strings.TrimSpace(u.ID) == "" {
		_ = c.delete(ctx, userKey)
		return nil, nil
	}
	return &u, nil
}

func (c Cache) SaveUser(ctx context.Context, u model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: save user: %w", err)
	}
	if err := c.set(ctx, userKey, string(raw)); err != nil {
		return fmt.Errorf("session: save user: %w", err)
	}
	return nil
}

func (c Cache) ClearUser(ctx context.Context) error {
	if err := c.delete(ctx, userKey); err != nil {
		return fmt.Errorf("session: clear user: %w", err)
	}
	return nil
}

// storedCookie is the persisted subset of http.Cookie that matters for
// replaying the backend session cookie.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

func (c Cache) loadCookies(ctx context.Context) []*http.Cookie {
	raw, ok, err := c.get(ctx, cookiesKey)
	if err != nil || !ok {
		return nil
	}
	var stored []storedCookie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		_ = c.delete(ctx, cookiesKey)
		return nil
	}
	out := make([]*http.Cookie, 0, len(stored))
	now := time.Now()
	for _, sc := range stored {
		if !sc.Expires.IsZero() && sc.Expires.Before(now) {
			continue
		}
		out = append(out, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path, Expires: sc.Expires})
	}
	return out
}

func (c Cache) saveCookies(ctx context.Context, cookies []*http.Cookie) {
	stored := make([]storedCookie, 0, len(cookies))
	for _, ck := range cookies {
		stored = append(stored, storedCookie{Name: ck.Name, Value: ck.Value, Path: ck.Path, Expires: ck.Expires})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return
	}
	_ = c.set(ctx, cookiesKey, string(raw))
}

func (c Cache) clearCookies(ctx context.Context) {
	_ = c.delete(ctx, cookiesKey)
}

// persistentJar wraps a cookiejar so the backend's HttpOnly session cookie
// survives process restarts. Only cookies for the API host are persisted.
type persistentJar struct {
	mu    sync.Mutex
	inner http.CookieJar
	cache Cache
	base  *url.URL
	// byName mirrors what we persisted, keyed by cookie name, so repeated
	// Set-Cookie headers overwrite rather than accumulate.
	byName map[string]*http.Cookie
}

// NewCookieJar returns a jar preloaded with any persisted cookies for base.
func (c Cache) NewCookieJar(ctx context.Context, base *url.URL, inner http.CookieJar) http.CookieJar {
	j := &persistentJar{inner: inner, cache: c, base: base, byName: map[string]*http.Cookie{}}
	for _, ck := range c.loadCookies(ctx) {
		j.byName[ck.Name] = ck
	}
	if len(j.byName) > 0 {
		restored := make([]*http.Cookie, 0, len(j.byName))
		for _, ck := range j.byName {
			restored = append(restored, ck)
		}
		inner.SetCookies(base, restored)
	}
	return j
}

func (j *persistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
	if u.Host != j.base.Host {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, ck := range cookies {
		if ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(j.byName, ck.Name)
			continue
		}
		j.byName[ck.Name] = ck
	}
	all := make([]*http.Cookie, 0, len(j.byName))
	for _, ck := range j.byName {
		all = append(all, ck)
	}
	j.cache.saveCookies(context.Background(), all)
}

func (j *persistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}
