package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/infrastructure/ratelimit"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/errors"
)

type stubVerifier struct {
	tokens map[string]*auth.Token
}

func (s stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := s.tokens[idToken]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("token %q rejected", idToken)
}

func newVerifier() stubVerifier {
	now := time.Now()
	return stubVerifier{tokens: map[string]*auth.Token{
		"user-token": {
			UID:      "u1",
			IssuedAt: now.Add(-time.Minute).Unix(),
			Expires:  now.Add(time.Hour).Unix(),
			Claims:   map[string]interface{}{"email": "u1@example.com"},
		},
		"admin-token": {
			UID:      "admin",
			IssuedAt: now.Add(-time.Minute).Unix(),
			Expires:  now.Add(time.Hour).Unix(),
		},
	}}
}

type profileStub struct {
	admins map[string]bool
	err    error
}

func (p profileStub) GetByUID(_ context.Context, uid string) (*entity.UserProfile, error) {
	if p.err != nil {
		return nil, p.err
	}
	isAdmin, ok := p.admins[uid]
	if !ok {
		return nil, errors.NotFound("User profile", nil)
	}
	return &entity.UserProfile{UID: uid, IsAdmin: isAdmin}, nil
}

func (p profileStub) CreateIfAbsent(context.Context, *entity.UserProfile) (bool, error) {
	return false, nil
}

func (p profileStub) MergeProfile(context.Context, string, entity.ProfileUpdate) error {
	return nil
}

func (p profileStub) SetAdmin(context.Context, string, bool) error {
	return nil
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newEcho(profiles profileStub) *echo.Echo {
	authMiddleware := NewAuthMiddleware(newVerifier())
	adminMiddleware := NewAdminMiddleware(usecase.NewRoleUseCase(profiles, nil))

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUID(c)+"|"+CurrentIdentity(c).Email)
	}, authMiddleware.Authenticate)
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, "welcome")
	}, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	return e
}

func TestAuthenticate(t *testing.T) {
	e := newEcho(profileStub{})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic user-token", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer user-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(e, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	assert.Equal(t, "u1|u1@example.com", serve(e, req).Body.String())
}

func TestAdminOnly(t *testing.T) {
	e := newEcho(profileStub{admins: map[string]bool{"admin": true, "u1": false}})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	assert.Equal(t, http.StatusOK, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := serve(e, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), errors.CodeForbidden)
}

func TestAdminOnlyFailsClosedOnStoreError(t *testing.T) {
	e := newEcho(profileStub{
		admins: map[string]bool{"admin": true},
		err:    errors.Transient("firestore unavailable", nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := serve(e, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "welcome")
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.POST("/contact", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimit(ratelimit.PerMinute(2), "contact"))

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		return serve(e, req)
	}

	require.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)
	require.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)

	rec := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2").Code)
}
