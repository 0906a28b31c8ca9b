package middleware

// identity.go resolves the caller's session. The opaque token travels
// either in the `sid` cookie (the shape the legacy web server used) or in
// an Authorization bearer header. When the token resolves, the hydrated
// user snapshot is stashed in the Echo context; when it does not, the
// request proceeds as an anonymous caller and the handlers decide what
// that means per endpoint.

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/streamatlas/stream-atlas/internal/model"
	"github.com/streamatlas/stream-atlas/internal/service"
)

const (
	// SessionCookie is the cookie carrying the session token.
	SessionCookie = "sid"
	// ctx key for the resolved user snapshot
	ctxUser = "user"
)

// SessionToken extracts the raw session token from the request: cookie
// first, bearer header second. Empty means anonymous.
func SessionToken(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// CurrentUser returns the resolved user stashed by SessionIdentity.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(ctxUser).(model.User)
	return u, ok
}

// SessionIdentity resolves the session token on every request and stores
// the user snapshot in the context. Unknown or expired tokens simply leave
// the request anonymous.
func SessionIdentity(ident *service.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := SessionToken(c); token != "" {
				if u, ok, err := ident.Current(c.Request().Context(), token); err == nil && ok {
					c.Set(ctxUser, u)
				}
			}
			return next(c)
		}
	}
}
