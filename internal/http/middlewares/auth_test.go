package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"workx.com/workx/internal/constants"
	"workx.com/workx/internal/sessions"
)

type fakeStore struct {
	tokens map[string]sessions.Principal
}

func (f *fakeStore) Create(ctx context.Context, p sessions.Principal) (string, error) {
	return "", nil
}

func (f *fakeStore) Resolve(ctx context.Context, token string) (*sessions.Principal, error) {
	p, ok := f.tokens[token]
	if !ok {
		return nil, sessions.ErrSessionNotFound
	}
	return &p, nil
}

func (f *fakeStore) Destroy(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newContext(e *echo.Echo, token string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticateSetsPrincipal(t *testing.T) {
	e := echo.New()
	store := &fakeStore{tokens: map[string]sessions.Principal{
		"tok-1": {ID: "writer-1", Username: "alice", Role: constants.RoleWriter},
	}}

	handler := Authenticate(store)(func(c echo.Context) error {
		p, ok := Current(c)
		if !ok {
			t.Fatal("principal not set for a valid token")
		}
		if p.Username != "alice" {
			t.Errorf("unexpected principal %+v", p)
		}
		if Token(c) != "tok-1" {
			t.Errorf("unexpected token %q", Token(c))
		}
		return c.NoContent(http.StatusOK)
	})

	c, _ := newContext(e, "tok-1")
	if err := handler(c); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
}

func TestAuthenticatePassesThroughAnonymous(t *testing.T) {
	e := echo.New()
	store := &fakeStore{tokens: map[string]sessions.Principal{}}

	handler := Authenticate(store)(func(c echo.Context) error {
		if _, ok := Current(c); ok {
			t.Error("no principal expected for an unknown token")
		}
		return c.NoContent(http.StatusOK)
	})

	c, _ := newContext(e, "bogus")
	if err := handler(c); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// Anonymous request gets 401.
	c, _ := newContext(e, "")
	err := RequireRole(constants.RoleAdmin)(next)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous, got %v", err)
	}

	// Wrong role gets 403.
	c, _ = newContext(e, "")
	c.Set(principalContextKey, sessions.Principal{ID: "u1", Role: constants.RoleUser})
	err = RequireRole(constants.RoleAdmin)(next)(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %v", err)
	}

	// Matching role passes.
	c, _ = newContext(e, "")
	c.Set(principalContextKey, sessions.Principal{ID: "a1", Role: constants.RoleAdmin})
	if err := RequireRole(constants.RoleAdmin)(next)(c); err != nil {
		t.Errorf("matching role must pass, got %v", err)
	}
}
