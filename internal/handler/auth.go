package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamatlas/stream-atlas/internal/middleware"
	"github.com/streamatlas/stream-atlas/internal/model"
	"github.com/streamatlas/stream-atlas/internal/repository"
	"github.com/streamatlas/stream-atlas/internal/service"
)

// AuthHandler bundles dependencies for identity endpoints. There is no
// password anywhere: identity is a self-declared username exchanged for an
// opaque session token.
type AuthHandler struct {
	Identity *service.Identity
}

func NewAuthHandler(ident *service.Identity) *AuthHandler {
	return &AuthHandler{Identity: ident}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
}

type userPart struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Wishlist []int64 `json:"wishlist"`
}

type loginResp struct {
	User  userPart `json:"user"`
	Token string   `json:"token"`
}

func toUserPart(u model.User) userPart {
	wl := u.Wishlist
	if wl == nil {
		wl = []int64{}
	}
	return userPart{ID: u.ID, Username: u.Username, Wishlist: wl}
}

// Login resolves-or-creates the user and issues a session. The token is
// returned in the body and also set as the `sid` cookie, mirroring the
// legacy page flow.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Username) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, token, err := h.Identity.Login(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, loginResp{User: toUserPart(u), Token: token})
}

// Logout purges the caller's session and clears the cookie. Logging out
// without a session is a no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.SessionToken(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Identity.Logout(ctx, token); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me returns the session's user snapshot, or 401 for anonymous callers.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}
