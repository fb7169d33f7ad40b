package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/infrastructure/firebase"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
	"gamerverse/pkg/response"
)

const (
	ContextKeyUID      = "uid"
	ContextKeyIdentity = "identity"
)

type AuthMiddleware struct {
	verifier firebase.TokenVerifier
}

func NewAuthMiddleware(verifier firebase.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		id, err := m.VerifyToken(c.Request().Context(), parts[1])
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(ContextKeyUID, id.UID)
		c.Set(ContextKeyIdentity, id)
		return next(c)
	}
}

// VerifyToken checks a raw ID token. The order stream uses it directly because
// browsers cannot set headers on a WebSocket handshake.
func (m *AuthMiddleware) VerifyToken(ctx context.Context, idToken string) (*entity.Identity, error) {
	if idToken == "" {
		return nil, errors.Unauthorized("Token is required", nil)
	}

	token, err := m.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		logger.Debug("Token verification failed: %v", err)
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	return firebase.IdentityFromToken(token), nil
}

// CurrentIdentity returns the caller set by Authenticate, or nil.
func CurrentIdentity(c echo.Context) *entity.Identity {
	id, _ := c.Get(ContextKeyIdentity).(*entity.Identity)
	return id
}

func CurrentUID(c echo.Context) string {
	uid, _ := c.Get(ContextKeyUID).(string)
	return uid
}
