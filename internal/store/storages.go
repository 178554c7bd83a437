package store

import (
	"context"
	"fmt"

	"github.com/stampdeck/loyalty-keeper/internal/config"
	"github.com/stampdeck/loyalty-keeper/internal/logger"
)

// ClientStorages groups all local repositories of the loyalty client into a
// single value that can be passed around the service layer. Every entity
// repository routes its mutations through the shared [SyncStateRepository],
// which is the only holder of the repository-wide dirty timestamp.
type ClientStorages struct {
	// Profiles is the repository for the single business profile.
	Profiles ProfileRepository
	// Rewards is the repository for rewards and their tombstone ledger.
	Rewards RewardRepository
	// Campaigns is the repository for marketing campaigns.
	Campaigns CampaignRepository
	// Customers is the repository for enrolled loyalty customers.
	Customers CustomerRepository
	// SyncState is the repository for the sync metadata record; it also
	// implements the dirty marker the other repositories mutate through.
	SyncState SyncStateRepository
}

// NewClientStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value with every entity
//     repository wired to the shared key-value store and dirty marker.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	kv := NewSQLiteKeyValueStore(db, logger)

	return NewClientStoragesWithKV(kv, logger), nil
}

// NewClientStoragesWithKV wires the repository layer over an already-open
// [KeyValueStore]. Tests use it with [MemoryKeyValueStore].
func NewClientStoragesWithKV(kv KeyValueStore, logger *logger.Logger) *ClientStorages {
	syncState := NewSyncStateRepository(kv, logger)

	return &ClientStorages{
		Profiles:  NewProfileRepository(kv, syncState, logger),
		Rewards:   NewRewardRepository(kv, syncState, logger),
		Campaigns: NewCampaignRepository(kv, syncState, logger),
		Customers: NewCustomerRepository(kv, syncState, logger),
		SyncState: syncState,
	}
}
