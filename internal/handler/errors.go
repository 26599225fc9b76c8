package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/banquet-booking/internal/metrics"
	"github.com/iliyamo/banquet-booking/internal/repository"
	"github.com/iliyamo/banquet-booking/internal/service"
)

// errorBody is the JSON shape of every failed request.  Kind is stable and
// meant for programmatic handling; Detail is human-readable.
type errorBody struct {
	Error  string               `json:"error"`
	Detail string               `json:"detail,omitempty"`
	Fields []service.FieldError `json:"fields,omitempty"`
}

// statusFor maps an error kind onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrUnknownBanquet),
		errors.Is(err, repository.ErrUnknownCustomer),
		errors.Is(err, repository.ErrUnknownBooking):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateKey), errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrConnection):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes err as an errorBody.  Storage and connection failures are
// logged and their driver detail is withheld from the client.
func fail(c echo.Context, err error) error {
	status := statusFor(err)
	body := errorBody{Error: metrics.Outcome(err), Detail: err.Error()}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
		body.Detail = "invalid input"
	}
	if status >= http.StatusInternalServerError {
		logrus.WithContext(c.Request().Context()).WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
		}).Error("request failed")
		body.Detail = ""
	}
	return c.JSON(status, body)
}
