package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/banquet-booking/internal/database"
	"github.com/iliyamo/banquet-booking/internal/model"
)

// CustomerRepo stores registrations.  Passwords arrive already hashed.
type CustomerRepo struct {
	conns database.Provider
}

// NewCustomerRepo returns a CustomerRepo drawing connections from p.
func NewCustomerRepo(p database.Provider) *CustomerRepo { return &CustomerRepo{conns: p} }

// Create inserts c.  A taken CustomerID is ErrDuplicateKey and leaves the
// existing row untouched.
func (r *CustomerRepo) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO Customer (CustomerID, Name, Contact, Email, Address, Password)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.CustomerID, c.Name, c.Contact, c.Email, c.Address, c.PasswordHash)
		return classify(err, "insert customer "+c.CustomerID, nil)
	})
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// ListByName returns every customer registered under name, password hash
// included.  Names are not unique.
func (r *CustomerRepo) ListByName(ctx context.Context, name string) ([]model.Customer, error) {
	return r.list(ctx, "list customers by name",
		`SELECT CustomerID, Name, Contact, Email, Address, Password FROM Customer WHERE Name = ?`, name)
}

// ListLegacyPasswords returns customers whose Password column does not hold
// a bcrypt hash.
func (r *CustomerRepo) ListLegacyPasswords(ctx context.Context) ([]model.Customer, error) {
	return r.list(ctx, "list legacy passwords",
		`SELECT CustomerID, Name, Contact, Email, Address, Password FROM Customer WHERE Password NOT LIKE '$2%'`)
}

// UpdatePasswordHash replaces the stored password of one customer.
func (r *CustomerRepo) UpdatePasswordHash(ctx context.Context, customerID, hash string) error {
	return withConn(ctx, r.conns, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, "UPDATE Customer SET Password = ? WHERE CustomerID = ?", hash, customerID)
		if err != nil {
			return classify(err, "update password "+customerID, nil)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
		}
		return nil
	})
}

func (r *CustomerRepo) list(ctx context.Context, op, query string, args ...any) ([]model.Customer, error) {
	var out []model.Customer
	err := withConn(ctx, r.conns, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return classify(err, op, nil)
		}
		defer rows.Close()
		for rows.Next() {
			var c model.Customer
			if err := rows.Scan(&c.CustomerID, &c.Name, &c.Contact, &c.Email, &c.Address, &c.PasswordHash); err != nil {
				return classify(err, op, nil)
			}
			out = append(out, c)
		}
		return classify(rows.Err(), op, nil)
	})
	return out, err
}
