package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamatlas/stream-atlas/internal/model"
	"github.com/streamatlas/stream-atlas/internal/repository"
)

// CatalogStore is the slice of the catalog repository the handlers need.
type CatalogStore interface {
	FetchByType(ctx context.Context, t model.MediaType) ([]model.MediaItem, error)
	FetchFiltered(ctx context.Context, search, genre string) ([]model.MediaItem, error)
	Insert(ctx context.Context, t model.MediaType, title, description string, year int, extra1, extra2, genresText string) error
	Stats(ctx context.Context) (model.Stats, error)
}

// CatalogHandler exposes browse, search, add-media and stats endpoints.
type CatalogHandler struct {
	Catalog CatalogStore
}

func NewCatalogHandler(cat CatalogStore) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// homeResp carries the three home-page sections, one per media type.
type homeResp struct {
	Movies []model.MediaItem `json:"movies"`
	Series []model.MediaItem `json:"series"`
	Games  []model.MediaItem `json:"games"`
}

// Home returns the three typed sections, one FetchByType call per type.
func (h *CatalogHandler) Home(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var resp homeResp
	sections := []struct {
		t   model.MediaType
		dst *[]model.MediaItem
	}{
		{model.TypeMovie, &resp.Movies},
		{model.TypeSeries, &resp.Series},
		{model.TypeGame, &resp.Games},
	}
	for _, s := range sections {
		items, err := h.Catalog.FetchByType(ctx, s.t)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		*s.dst = items
	}
	return c.JSON(http.StatusOK, resp)
}

// Search filters the catalog by optional free text (?q=) and optional genre
// text (?g=). Both empty returns the whole grouped catalog.
func (h *CatalogHandler) Search(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Catalog.FetchFiltered(ctx,
		strings.TrimSpace(c.QueryParam("q")),
		strings.TrimSpace(c.QueryParam("g")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type addMediaReq struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        string `json:"year"`
	Extra1      string `json:"extra1"`
	Extra2      string `json:"extra2"`
	Genres      string `json:"genres"`
}

// AddMedia creates a catalog entry. Year must be numeric; the extra1 field
// is interpreted per type by the repository.
func (h *CatalogHandler) AddMedia(c echo.Context) error {
	var req addMediaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	t, ok := model.ParseMediaType(req.Type)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown media type"})
	}
	year, err := strconv.Atoi(strings.TrimSpace(req.Year))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.Insert(ctx, t, req.Title, req.Description, year, req.Extra1, req.Extra2, req.Genres); err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid media"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusCreated)
}

// GetStats returns the dashboard aggregates.
func (h *CatalogHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Catalog.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, stats)
}
