package models

import "time"

// Reward type values.
const (
	RewardTypeDiscount = "discount"
	RewardTypeFreeItem = "free_item"
	RewardTypeOther    = "other"
)

// Reward is a single redeemable reward of a loyalty account.
//
// Deletion is soft: a deleted reward stays in the main collection with Active
// forced false and a verbatim copy is appended to the tombstone ledger. The
// ledger is consulted on every pull so that a stale remote copy can never
// silently reactivate a locally deleted reward.
type Reward struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Requirement is the number of stamps or points needed to redeem.
	Requirement int `json:"requirement"`

	// Type is one of the RewardType* constants.
	Type string `json:"type"`

	Active bool `json:"active"`

	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	// RedeemCount is how many times the reward has been redeemed.
	RedeemCount int `json:"redeem_count"`

	// QRPayload is the opaque payload encoded into the reward's QR code.
	QRPayload string `json:"qr_payload"`

	// PIN is the 4-digit code a staff member enters to confirm a redemption.
	PIN string `json:"pin"`

	// Products and Actions optionally narrow the reward to a subset of the
	// profile's product/action lists. Empty means "applies to all".
	Products []string `json:"products,omitempty"`
	Actions  []string `json:"actions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
