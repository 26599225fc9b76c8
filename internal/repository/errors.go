// Package repository defines the error kinds shared by every repository.
// Handlers and services compare against these sentinels with errors.Is;
// the wrapped text is the optional human-readable detail.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/banquet-booking/internal/database"
)

// ErrConnection is returned when no connection to the store could be acquired.
var ErrConnection = database.ErrConnection

// ErrValidation marks malformed caller input.  The caller should re-prompt.
var ErrValidation = errors.New("validation error")

// ErrUnknownBanquet is returned when a booking references a banquet that
// does not exist.  No booking row is written.
var ErrUnknownBanquet = errors.New("unknown banquet")

// ErrUnknownCustomer is returned when a booking references a customer that
// does not exist.
var ErrUnknownCustomer = errors.New("unknown customer")

// ErrUnknownBooking is returned when a payment references a booking that
// does not exist.
var ErrUnknownBooking = errors.New("unknown booking")

// ErrNotFound is the business answer for an absent record.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when an insert collides with an existing
// primary key.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrConflict is returned when a delete cannot proceed because other rows
// still reference the record (e.g. a booking with recorded payments).
var ErrConflict = errors.New("conflict")

// ErrInvalidCredentials is returned by authentication when no customer
// matches the supplied name and password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrStorage covers every other persistence failure, timeouts included.
var ErrStorage = errors.New("storage error")

// MySQL server error numbers the repositories translate.
const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	mysqlRowIsReferenced2 = 1217
	mysqlNoReferencedRow2 = 1216
)

// classify maps a driver error onto an error kind.  onMissingParent is the
// kind to use when a foreign key points at a row that does not exist.
func classify(err error, op string, onMissingParent error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnection) {
		return err
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %s", ErrDuplicateKey, op)
		case mysqlNoReferencedRow, mysqlNoReferencedRow2:
			if onMissingParent != nil {
				return fmt.Errorf("%w: %s", onMissingParent, op)
			}
		case mysqlRowIsReferenced, mysqlRowIsReferenced2:
			return fmt.Errorf("%w: %s: record is still referenced", ErrConflict, op)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: timed out", ErrStorage, op)
	}
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
