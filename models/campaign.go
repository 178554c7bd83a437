package models

import "time"

// Campaign type values.
const (
	CampaignTypeBonusReward = "bonus_reward"
	CampaignTypeFlashSale   = "flash_sale"
	CampaignTypeReferral    = "referral"
)

// Campaign status values.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Campaign is a time-bounded marketing campaign of a loyalty account.
// Unlike rewards, campaigns are hard-deleted locally; the remote set is made
// to match the local set wholesale on every push.
type Campaign struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Type is one of the CampaignType* constants.
	Type string `json:"type"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// Status is one of the CampaignStatus* constants.
	Status string `json:"status"`

	TargetAudience string `json:"target_audience"`

	Conditions CampaignConditions `json:"conditions"`
	Stats      CampaignStats      `json:"stats"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CampaignConditions describes what a customer must do to complete the
// campaign and what they earn for it.
type CampaignConditions struct {
	RewardData CampaignRewardData `json:"reward_data"`
}

// CampaignRewardData duplicates the reward-like fields a campaign needs to
// stand on its own: which products/actions count, how the staff confirms a
// redemption, and how progress is measured.
type CampaignRewardData struct {
	Products        []string `json:"products,omitempty"`
	Actions         []string `json:"actions,omitempty"`
	PIN             string   `json:"pin"`
	QRPayload       string   `json:"qr_payload"`
	StampsRequired  int      `json:"stamps_required"`
	PointsPerAction int      `json:"points_per_action"`
}

// CampaignStats holds usage counters reported back to the business owner.
type CampaignStats struct {
	Joined       int `json:"joined"`
	Completed    int `json:"completed"`
	RewardsGiven int `json:"rewards_given"`
}
