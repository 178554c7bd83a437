package models

import "time"

// Customer is one enrolled loyalty customer of an account. Customers are not
// soft-deleted by this client, so pushes use create-or-update semantics with
// no delete-then-write pass.
type Customer struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Stamps is the customer's current stamp balance.
	Stamps int `json:"stamps"`

	LastVisit *time.Time `json:"last_visit,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
