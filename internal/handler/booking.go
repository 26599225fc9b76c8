package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/service"
)

// BookingHandler exposes the booking core over HTTP.  Routes are mounted
// behind JWTAuth.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler serves the booking routes from s.
func NewBookingHandler(s *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: s}
}

// bookingJSON renders EventDate as YYYY-MM-DD.
type bookingJSON struct {
	model.Booking
	EventDate string `json:"event_date"`
}

func toBookingJSON(b model.Booking) bookingJSON {
	return bookingJSON{Booking: b, EventDate: b.EventDate.Format(model.DateLayout)}
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var in service.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "validation_error", Detail: "invalid request body"})
	}
	b, err := h.Bookings.Create(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingJSON(b))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.Bookings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toBookingJSON(b))
}

// Update handles PUT /v1/bookings/:id.  The path id wins over any id in
// the body.
func (h *BookingHandler) Update(c echo.Context) error {
	var in service.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "validation_error", Detail: "invalid request body"})
	}
	in.BookingID = c.Param("id")
	b, err := h.Bookings.Update(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toBookingJSON(b))
}

// Delete handles DELETE /v1/bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	if err := h.Bookings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": c.Param("id")})
}
