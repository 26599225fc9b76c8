package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/service"
)

// PaymentHandler records and looks up payments.
type PaymentHandler struct {
	Payments *service.PaymentService
}

// NewPaymentHandler serves the payment routes from s.
func NewPaymentHandler(s *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: s}
}

type paymentJSON struct {
	model.Payment
	PaymentDate string `json:"payment_date"`
}

func toPaymentJSON(p model.Payment) paymentJSON {
	return paymentJSON{Payment: p, PaymentDate: p.PaymentDate.Format(model.DateLayout)}
}

// Save handles POST /v1/payments.
func (h *PaymentHandler) Save(c echo.Context) error {
	var in service.PaymentInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "validation_error", Detail: "invalid request body"})
	}
	p, err := h.Payments.Save(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toPaymentJSON(p))
}

// Find handles GET /v1/payments/:id?booking_id=.
func (h *PaymentHandler) Find(c echo.Context) error {
	p, err := h.Payments.Find(c.Request().Context(), c.Param("id"), c.QueryParam("booking_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentJSON(p))
}
