package service

import (
	"context"
	"time"

	"github.com/stampdeck/loyalty-keeper/models"
)

// ClientSyncService reconciles the local repository with the remote loyalty
// store. One whole-repository timestamp comparison decides the direction;
// the chosen transfer then replaces the losing side in full.
type ClientSyncService interface {
	// Sync compares the local LastModified against the remote freshness
	// timestamp and executes a push, a pull, or nothing. All failures are
	// folded into the returned [models.SyncResult]; Sync itself never
	// panics past the engine boundary.
	Sync(ctx context.Context, accountID string) models.SyncResult

	// FirstLoginDownload hydrates an empty local repository from the
	// remote store. It is a pull-only variant of Sync used once at account
	// activation: it reuses the tombstone merge rule, sets
	// LastDownloadedAt, and never advances LastModified.
	FirstLoginDownload(ctx context.Context, accountID string) models.SyncResult
}

// ClientSyncJob runs Sync on a fixed interval in the background.
type ClientSyncJob interface {
	Start(ctx context.Context, accountID string, interval time.Duration)
	Stop()
}
