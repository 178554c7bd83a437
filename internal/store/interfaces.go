package store

import (
	"context"
	"time"

	"github.com/stampdeck/loyalty-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is the durability layer beneath the local repository: a
// simple crash-tolerant key-value store addressed by string keys. Its only
// transactional guarantee is "last write durably persisted" per key; there is
// no multi-key atomicity, and the repositories are written so that a crash
// between two keys is converged away by the next successful sync.
type KeyValueStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys with the given prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}

// DirtyMarker is the single function through which every local entity
// mutation routes. It is the only place the repository-wide modification
// timestamp advances; pull and bulk-download paths must never call it.
type DirtyMarker interface {
	MarkDirty(ctx context.Context, accountID string) error
}

// ProfileRepository stores the single business profile of an account.
type ProfileRepository interface {
	GetProfile(ctx context.Context, accountID string) (models.Profile, error)
	// SaveProfile upserts the profile, stamping CreatedAt on first insert
	// and UpdatedAt always, and marks the repository dirty.
	SaveProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	// ReplaceProfile overwrites the stored profile verbatim. With skipDirty
	// the dirty marker is bypassed; this is the path pulls use.
	ReplaceProfile(ctx context.Context, profile models.Profile, skipDirty bool) error
}

// RewardRepository stores the reward collection and its tombstone ledger.
// Reward deletion is soft: the reward stays in the main collection with
// Active cleared and a verbatim copy is appended to the ledger.
type RewardRepository interface {
	GetAllRewards(ctx context.Context, accountID string) ([]models.Reward, error)
	GetRewardByID(ctx context.Context, accountID, rewardID string) (models.Reward, error)
	// SaveReward upserts by id (assigning one when empty), stamps
	// CreatedAt/UpdatedAt, and marks the repository dirty.
	SaveReward(ctx context.Context, reward models.Reward) (models.Reward, error)
	// SaveAllRewards replaces the whole collection. With skipDirty the
	// dirty marker is bypassed; this is the path pulls use.
	SaveAllRewards(ctx context.Context, accountID string, rewards []models.Reward, skipDirty bool) error
	// DeleteReward soft-deletes: clears Active in place and appends a
	// tombstone, then marks the repository dirty.
	DeleteReward(ctx context.Context, accountID, rewardID string) error

	GetTombstones(ctx context.Context, accountID string) ([]models.Reward, error)
}

// CampaignRepository stores the campaign collection. Campaigns are
// hard-deleted locally.
type CampaignRepository interface {
	GetAllCampaigns(ctx context.Context, accountID string) ([]models.Campaign, error)
	GetCampaignByID(ctx context.Context, accountID, campaignID string) (models.Campaign, error)
	SaveCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error)
	SaveAllCampaigns(ctx context.Context, accountID string, campaigns []models.Campaign, skipDirty bool) error
	DeleteCampaign(ctx context.Context, accountID, campaignID string) error
}

// CustomerRepository stores the customer collection. Customers are
// hard-deleted locally.
type CustomerRepository interface {
	GetAllCustomers(ctx context.Context, accountID string) ([]models.Customer, error)
	GetCustomerByID(ctx context.Context, accountID, customerID string) (models.Customer, error)
	SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	SaveAllCustomers(ctx context.Context, accountID string, customers []models.Customer, skipDirty bool) error
	DeleteCustomer(ctx context.Context, accountID, customerID string) error
}

// SyncStateRepository stores the single repository-wide sync metadata record
// and implements [DirtyMarker].
type SyncStateRepository interface {
	DirtyMarker

	// GetSyncState returns the account's sync metadata. A missing record is
	// not an error; the zero value is returned instead.
	GetSyncState(ctx context.Context, accountID string) (models.SyncState, error)
	PutSyncState(ctx context.Context, accountID string, state models.SyncState) error

	// MarkSynced records a successful push: LastSyncedAt=syncedAt,
	// HasUnsyncedChanges=false. LastModified is left untouched.
	MarkSynced(ctx context.Context, accountID string, syncedAt time.Time) error

	// MarkPulled records a successful pull: LastSyncedAt=syncedAt,
	// LastModified=remoteTimestamp (never "now"), HasUnsyncedChanges=false.
	MarkPulled(ctx context.Context, accountID string, syncedAt, remoteTimestamp time.Time) error

	// MarkDownloaded records a completed first-login bulk download. Only
	// LastDownloadedAt is advanced.
	MarkDownloaded(ctx context.Context, accountID string, downloadedAt time.Time) error
}
