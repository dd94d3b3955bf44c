package domain

import "time"

type Customer struct {
	ID        string    `json:"customer_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName is what the login response exposes, matching the frontend contract.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Address struct {
	ID         string `json:"address_id"`
	CustomerID string `json:"customer_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}
