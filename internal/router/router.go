package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/streamatlas/stream-atlas/internal/handler"
	"github.com/streamatlas/stream-atlas/internal/middleware"
	"github.com/streamatlas/stream-atlas/internal/service"
)

// RegisterRoutes registers routes that do not belong to the versioned API.
// Currently it exposes only a health check, used by load balancers and
// monitoring systems to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the versioned API under /v1. Session identity is
// resolved for every request; individual handlers decide whether an
// anonymous caller is acceptable (browse, search and stats are public,
// wishlist and review mutations are not).
func RegisterAPI(e *echo.Echo, ident *service.Identity, a *handler.AuthHandler, cat *handler.CatalogHandler, inter *handler.InteractionHandler) {
	v1 := e.Group("/v1")
	v1.Use(middleware.SessionIdentity(ident))

	// Identity: self-declared username exchanged for an opaque session token.
	v1.POST("/auth/login", a.Login)
	v1.POST("/auth/logout", a.Logout)
	v1.GET("/me", a.Me)

	// Catalog browsing and administration.
	v1.GET("/home", cat.Home)
	v1.GET("/media", cat.Search)
	v1.POST("/media", cat.AddMedia)
	v1.GET("/stats", cat.GetStats)

	// Session-scoped interactions.
	v1.POST("/wishlist/toggle", inter.ToggleWishlist)
	v1.GET("/wishlist/status", inter.WishlistStatus)
	v1.POST("/reviews", inter.AddReview)
}
