package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamatlas/stream-atlas/internal/middleware"
	"github.com/streamatlas/stream-atlas/internal/repository"
	"github.com/streamatlas/stream-atlas/internal/service"
)

// InteractionHandler exposes the session-scoped mutations: wishlist toggle
// and review submission.
type InteractionHandler struct {
	Interactions *service.Interaction
}

func NewInteractionHandler(inter *service.Interaction) *InteractionHandler {
	return &InteractionHandler{Interactions: inter}
}

type toggleReq struct {
	MediaID   int64  `json:"media_id"`
	MediaType string `json:"media_type"`
}

type reviewReq struct {
	MediaID   int64  `json:"media_id"`
	MediaType string `json:"media_type"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

// ToggleWishlist flips wishlist membership for the caller and reports the
// resulting state. Anonymous callers get an explicit 401 instead of the
// legacy silent no-op.
func (h *InteractionHandler) ToggleWishlist(c echo.Context) error {
	var req toggleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	added, err := h.Interactions.ToggleWishlist(ctx, middleware.SessionToken(c), req.MediaID, req.MediaType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		case errors.Is(err, repository.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid media type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"added": added})
}

// WishlistStatus reports persisted wishlist membership for one item, read
// from query params (?media_id=&media_type=). The session snapshot cannot
// answer this precisely because it drops the media type.
func (h *InteractionHandler) WishlistStatus(c echo.Context) error {
	mediaID, err := strconv.ParseInt(c.QueryParam("media_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid media_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	wished, err := h.Interactions.HasWished(ctx, middleware.SessionToken(c), mediaID, c.QueryParam("media_type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		case errors.Is(err, repository.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid media type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"wished": wished})
}

// AddReview stores a review for the caller.
func (h *InteractionHandler) AddReview(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Interactions.AddReview(ctx, middleware.SessionToken(c), req.MediaID, req.MediaType, req.Rating, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		case errors.Is(err, repository.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusCreated)
}
