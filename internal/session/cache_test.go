package session

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"gigflow-cli/internal/model"
)

func TestCache_UserRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := Cache{Dir: t.TempDir()}

	u := model.User{ID: uuid.NewString(), Name: gofakeit.Name(), Email: gofakeit.Email()}
	if err := c.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	got, err := c.LoadUser(ctx)
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	if got == nil || *got != u {
		t.Fatalf("LoadUser = %+v; want %+v", got, u)
	}

	if err := c.ClearUser(ctx); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	got, err = c.LoadUser(ctx)
	if err != nil || got != nil {
		t.Fatalf("LoadUser after clear = %+v, %v; want nil, nil", got, err)
	}
}

func TestCache_LoadUser_Missing(t *testing.T) {
	t.Parallel()

	got, err := Cache{Dir: t.TempDir()}.LoadUser(context.Background())
	if err != nil || got != nil {
		t.Fatalf("LoadUser on empty cache = %+v, %v; want nil, nil", got, err)
	}
}

func TestCache_LoadUser_MalformedSlotIsPurged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := Cache{Dir: t.TempDir()}

	for _, raw := range []string{"{not json", `{"name":"no id"}`, `{"_id":"   "}`} {
		if err := c.set(ctx, userKey, raw); err != nil {
			t.Fatalf("seed slot: %v", err)
		}
		got, err := c.LoadUser(ctx)
		if err != nil || got != nil {
			t.Fatalf("LoadUser(%q) = %+v, %v; want nil, nil", raw, got, err)
		}
		// The bad slot must be gone, not re-parsed next time.
		if _, ok, _ := c.get(ctx, userKey); ok {
			t.Fatalf("malformed slot %q not purged", raw)
		}
	}
}

func TestPersistentJar_SurvivesRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	base, _ := url.Parse("http://api.local:5000")

	c := Cache{Dir: dir}
	jar := c.NewCookieJar(ctx, base, newMemJar())
	jar.SetCookies(base, []*http.Cookie{{Name: "token", Value: "abc", Path: "/"}})

	// A cookie for another host must not be persisted.
	other, _ := url.Parse("http://elsewhere.local")
	jar.SetCookies(other, []*http.Cookie{{Name: "tracker", Value: "x"}})

	reloaded := Cache{Dir: dir}.NewCookieJar(ctx, base, newMemJar())
	cookies := reloaded.Cookies(base)
	if len(cookies) != 1 || cookies[0].Name != "token" || cookies[0].Value != "abc" {
		t.Fatalf("reloaded cookies = %+v; want the one token cookie", cookies)
	}
}

func TestPersistentJar_ExpiredCookieDropped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	base, _ := url.Parse("http://api.local:5000")

	c := Cache{Dir: dir}
	jar := c.NewCookieJar(ctx, base, newMemJar())
	jar.SetCookies(base, []*http.Cookie{{Name: "token", Value: "abc"}})
	// Expiring the cookie (logout-style Set-Cookie) must remove it.
	jar.SetCookies(base, []*http.Cookie{{Name: "token", Value: "", Expires: time.Now().Add(-time.Hour)}})

	reloaded := Cache{Dir: dir}.NewCookieJar(ctx, base, newMemJar())
	if cookies := reloaded.Cookies(base); len(cookies) != 0 {
		t.Fatalf("reloaded cookies = %+v; want none", cookies)
	}
}

// memJar is a minimal host-keyed jar; the stdlib cookiejar applies public
// suffix rules that get in the way of fake test hosts.
type memJar struct {
	byHost map[string][]*http.Cookie
}

func newMemJar() *memJar { return &memJar{byHost: map[string][]*http.Cookie{}} }

func (j *memJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.byHost[u.Host] = append(j.byHost[u.Host], cookies...)
}

func (j *memJar) Cookies(u *url.URL) []*http.Cookie {
	return j.byHost[u.Host]
}
