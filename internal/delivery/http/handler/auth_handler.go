package handler

import (
	"time"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	ucauth "campus-jobs/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	svc          *ucauth.Service
	cookieSecure bool
}

func NewAuthHandler(svc *ucauth.Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

// RegisterRoutes mounts the auth endpoints. limit throttles sign-up and
// sign-in; optionalAuth lets sign-out see who is leaving. Both may be nil.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, limit, optionalAuth fiber.Handler) {
	if r == nil {
		return
	}

	post(r, "/signup", limit, h.SignUp)
	post(r, "/signin", limit, h.SignIn)
	r.Post("/refresh", h.Refresh)
	post(r, "/signout", optionalAuth, h.SignOut)
}

func post(r fiber.Router, path string, mw, h fiber.Handler) {
	if mw == nil {
		r.Post(path, h)
		return
	}
	r.Post(path, mw, h)
}

func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var req ucauth.SignUpInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	u, err := h.svc.SignUp(c.Context(), req)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "User created", dto.NewUserResponse(u))
}

func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	var req ucauth.SignInInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.svc.SignIn(c.Context(), req)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, sess.AccessToken, sess.ExpiresIn)
	return response.OK(c, dto.NewSessionResponse(sess))
}

// Refresh accepts the refresh token in the body or as a bearer token.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}
	tok := req.RefreshToken
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	}

	sess, err := h.svc.Refresh(c.Context(), tok)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, sess.AccessToken, sess.ExpiresIn)
	return response.OK(c, dto.NewSessionResponse(sess))
}

func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	h.svc.SignOut(c.Context(), middleware.ClaimsFrom(c))
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return response.Success(c, fiber.StatusOK, "Signed out", nil)
}

func (h *AuthHandler) setSessionCookie(c fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
