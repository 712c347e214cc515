package middleware

import (
	"strings"

	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/usecase/authz"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxClaimsKey = "claims"

	SessionCookie = "session"
)

// TokenVerifier turns an access token into caller claims.
type TokenVerifier interface {
	Verify(token string) (authz.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Middleware rejects requests without a valid access token. The token comes
// from the Authorization header or, failing that, the session cookie.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := tokenFromRequest(c)
		if !ok {
			return errs.Authentication(authz.MessageUnauthorized, nil)
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			return err
		}

		c.Locals(CtxClaimsKey, &claims)
		return c.Next()
	}
}

// Optional attaches claims when a valid token is present and lets every
// request through.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := tokenFromRequest(c); ok {
			if claims, err := m.verifier.Verify(token); err == nil {
				c.Locals(CtxClaimsKey, &claims)
			}
		}
		return c.Next()
	}
}

// ClaimsFrom returns the caller's claims, or nil on an unauthenticated route.
func ClaimsFrom(c fiber.Ctx) *authz.Claims {
	claims, _ := c.Locals(CtxClaimsKey).(*authz.Claims)
	return claims
}

func tokenFromRequest(c fiber.Ctx) (string, bool) {
	if tok, ok := BearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		return tok, true
	}
	tok := strings.TrimSpace(c.Cookies(SessionCookie))
	return tok, tok != ""
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
