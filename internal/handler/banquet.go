package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/repository"
)

// BanquetReader is the catalog lookup the handler needs.
type BanquetReader interface {
	Get(ctx context.Context, banquetID string) (model.Banquet, error)
	Search(ctx context.Context, q repository.BanquetSearchQuery) ([]model.Banquet, int64, error)
}

// EventTypeLister lists the event type catalog.
type EventTypeLister interface {
	List(ctx context.Context) ([]model.EventType, error)
}

// BanquetHandler serves the read-only catalog: banquets and event types.
type BanquetHandler struct {
	Banquets   BanquetReader
	EventTypes EventTypeLister
}

// Get handles GET /v1/banquets/:id.
func (h *BanquetHandler) Get(c echo.Context) error {
	b, err := h.Banquets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// List handles GET /v1/banquets?name=&location=&min_capacity=&page=&page_size=
func (h *BanquetHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	ps, _ := strconv.Atoi(c.QueryParam("page_size"))
	if ps < 1 {
		ps = 20
	}
	if ps > 100 {
		ps = 100
	}
	minCap, _ := strconv.Atoi(strings.TrimSpace(c.QueryParam("min_capacity")))

	q := repository.BanquetSearchQuery{
		Name:        strings.TrimSpace(c.QueryParam("name")),
		Location:    strings.TrimSpace(c.QueryParam("location")),
		MinCapacity: minCap,
		Page:        page,
		PageSize:    ps,
	}
	items, total, err := h.Banquets.Search(c.Request().Context(), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}

// ListEventTypes handles GET /v1/event-types.
func (h *BanquetHandler) ListEventTypes(c echo.Context) error {
	items, err := h.EventTypes.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}
