package model

// Customer mirrors the Customer table.  PasswordHash is stored in the
// legacy Password column and never leaves the service.
type Customer struct {
	CustomerID   string `json:"customer_id"`
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	PasswordHash string `json:"-"`
}
