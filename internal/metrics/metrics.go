package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iliyamo/banquet-booking/internal/repository"
)

var (
	// Operations counts core operations by entity, operation and outcome kind.
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "banquet_core",
			Name:      "operations_total",
			Help:      "The total number of booking core operations",
		},
		[]string{"entity", "operation", "outcome"},
	)

	// OperationDuration is the time spent in each core operation.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "banquet_core",
			Name:      "operation_duration_seconds",
			Help:      "Time spent in booking core operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"entity", "operation"},
	)
)

// Observe records one finished operation.
func Observe(entity, operation string, started time.Time, err error) {
	OperationDuration.WithLabelValues(entity, operation).Observe(time.Since(started).Seconds())
	Operations.WithLabelValues(entity, operation, Outcome(err)).Inc()
}

// Outcome names the error kind of err for metric labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, repository.ErrConnection):
		return "connection_failure"
	case errors.Is(err, repository.ErrValidation):
		return "validation_error"
	case errors.Is(err, repository.ErrUnknownBanquet):
		return "unknown_banquet"
	case errors.Is(err, repository.ErrUnknownCustomer):
		return "unknown_customer"
	case errors.Is(err, repository.ErrUnknownBooking):
		return "unknown_booking"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, repository.ErrConflict):
		return "conflict"
	case errors.Is(err, repository.ErrInvalidCredentials):
		return "invalid_credentials"
	}
	return "storage_error"
}
