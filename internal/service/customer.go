package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/banquet-booking/internal/metrics"
	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/repository"
	"github.com/iliyamo/banquet-booking/internal/utils"
)

// CustomerStore persists customers and their password hashes.
type CustomerStore interface {
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	ListByName(ctx context.Context, name string) ([]model.Customer, error)
	ListLegacyPasswords(ctx context.Context) ([]model.Customer, error)
	UpdatePasswordHash(ctx context.Context, customerID, hash string) error
}

// RegisterInput carries registration fields as text.
type RegisterInput struct {
	CustomerID string `json:"customer_id" validate:"required,max=50"`
	Name       string `json:"name" validate:"required,max=100"`
	Contact    string `json:"contact" validate:"required,max=30"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Address    string `json:"address" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// CustomerService registers and authenticates customers.  Passwords are
// stored as salted bcrypt hashes and compared in constant time.
type CustomerService struct {
	store      CustomerStore
	bcryptCost int
	validate   *validator.Validate
	// dummyHash is compared against when no customer matches a name, so
	// unknown names cost as much as wrong passwords.
	dummyHash string
}

// NewCustomerService wires a CustomerService hashing with bcryptCost.
func NewCustomerService(store CustomerStore, bcryptCost int) (*CustomerService, error) {
	dummy, err := utils.HashPassword("not-a-real-password", bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &CustomerService{store: store, bcryptCost: bcryptCost, validate: newValidator(), dummyHash: dummy}, nil
}

// Register validates in, hashes the password and stores the customer.
func (s *CustomerService) Register(ctx context.Context, in RegisterInput) (c model.Customer, err error) {
	defer func(start time.Time) { metrics.Observe("customer", "register", start, err) }(time.Now())

	password := in.Password
	trim(&in)
	in.Password = password
	verr := check(s.validate, in)
	// bcrypt counts bytes, the validator counts characters
	if len(in.Password) > maxPasswordBytes && !verr.has("password") {
		verr.add("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
	if err = verr.orNil(); err != nil {
		return model.Customer{}, err
	}
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return model.Customer{}, fmt.Errorf("%w: hash password: %v", repository.ErrStorage, err)
	}
	return s.store.Create(ctx, model.Customer{
		CustomerID:   in.CustomerID,
		Name:         in.Name,
		Contact:      in.Contact,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: hash,
	})
}

// Authenticate returns the customer registered under name whose password
// matches, or ErrInvalidCredentials.
func (s *CustomerService) Authenticate(ctx context.Context, name, password string) (c model.Customer, err error) {
	defer func(start time.Time) { metrics.Observe("customer", "authenticate", start, err) }(time.Now())

	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return model.Customer{}, repository.ErrInvalidCredentials
	}
	candidates, err := s.store.ListByName(ctx, name)
	if err != nil {
		return model.Customer{}, err
	}
	if len(candidates) == 0 {
		utils.VerifyPassword(s.dummyHash, password)
		return model.Customer{}, repository.ErrInvalidCredentials
	}
	for _, cand := range candidates {
		if utils.VerifyPassword(cand.PasswordHash, password) {
			return cand, nil
		}
	}
	return model.Customer{}, repository.ErrInvalidCredentials
}

// RehashLegacyPasswords replaces every cleartext password with its bcrypt
// hash and returns how many rows were migrated.
func (s *CustomerService) RehashLegacyPasswords(ctx context.Context) (int, error) {
	legacy, err := s.store.ListLegacyPasswords(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range legacy {
		if utils.IsHashed(c.PasswordHash) {
			continue
		}
		hash, err := utils.HashPassword(c.PasswordHash, s.bcryptCost)
		if err != nil {
			return n, fmt.Errorf("hash password of %s: %w", c.CustomerID, err)
		}
		if err := s.store.UpdatePasswordHash(ctx, c.CustomerID, hash); err != nil {
			return n, err
		}
		logrus.WithField("customer_id", c.CustomerID).Info("rehashed legacy password")
		n++
	}
	return n, nil
}
