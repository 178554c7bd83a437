package models

import "time"

// Profile is the business profile of one loyalty-program account. Exactly one
// profile lives in the local repository at a time.
//
// The remote copy of the profile carries double duty: its UpdatedAt field is
// the whole-repository freshness timestamp used by the sync engine to decide
// the transfer direction. Every successful push re-stamps it as the final
// step, so it always reflects the last time any part of the remote repository
// changed.
type Profile struct {
	// AccountID identifies the owning loyalty account.
	AccountID string `json:"account_id"`

	BusinessName string `json:"business_name"`
	OwnerName    string `json:"owner_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Category     string `json:"category"`
	Description  string `json:"description"`

	// Products is the ordered list of product names the business stamps for.
	Products []string `json:"products"`

	// Actions is the ordered list of action names (e.g. "visit", "review")
	// that can earn stamps or points.
	Actions []string `json:"actions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
