package store

import (
	"context"
	"fmt"
	"time"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/models"
)

type syncStateRepository struct {
	kv     KeyValueStore
	logger *logger.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

func NewSyncStateRepository(kv KeyValueStore, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

func (r *syncStateRepository) GetSyncState(ctx context.Context, accountID string) (models.SyncState, error) {
	state, _, err := readDocument[models.SyncState](ctx, r.kv, syncStateKey(accountID))
	if err != nil {
		return models.SyncState{}, fmt.Errorf("get sync state (account=%s): %w", accountID, err)
	}

	return state, nil
}

func (r *syncStateRepository) PutSyncState(ctx context.Context, accountID string, state models.SyncState) error {
	if err := writeDocument(ctx, r.kv, syncStateKey(accountID), state); err != nil {
		return fmt.Errorf("put sync state (account=%s): %w", accountID, err)
	}

	return nil
}

// MarkDirty implements [DirtyMarker]. It advances LastModified to the current
// time, raises HasUnsyncedChanges, bumps the informational version counter,
// and persists the record. Safe to call repeatedly from any mutating path;
// every call simply moves LastModified forward.
func (r *syncStateRepository) MarkDirty(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)

	state, err := r.GetSyncState(ctx, accountID)
	if err != nil {
		return err
	}

	now := r.now()
	state.LastModified = &now
	state.HasUnsyncedChanges = true
	state.Version++

	if err = r.PutSyncState(ctx, accountID, state); err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.MarkDirty").
			Str("account_id", accountID).
			Msg("failed to persist dirty sync state")
		return err
	}

	return nil
}

func (r *syncStateRepository) MarkSynced(ctx context.Context, accountID string, syncedAt time.Time) error {
	state, err := r.GetSyncState(ctx, accountID)
	if err != nil {
		return err
	}

	// LastModified stays untouched: a push does not make local data newer.
	state.LastSyncedAt = &syncedAt
	state.HasUnsyncedChanges = false

	return r.PutSyncState(ctx, accountID, state)
}

func (r *syncStateRepository) MarkPulled(ctx context.Context, accountID string, syncedAt, remoteTimestamp time.Time) error {
	state, err := r.GetSyncState(ctx, accountID)
	if err != nil {
		return err
	}

	// LastModified is set to the remote freshness timestamp that was just
	// read, never to "now": downloaded data must not masquerade as local
	// edits on the next comparison.
	state.LastSyncedAt = &syncedAt
	state.LastModified = &remoteTimestamp
	state.HasUnsyncedChanges = false

	return r.PutSyncState(ctx, accountID, state)
}

func (r *syncStateRepository) MarkDownloaded(ctx context.Context, accountID string, downloadedAt time.Time) error {
	state, err := r.GetSyncState(ctx, accountID)
	if err != nil {
		return err
	}

	state.LastDownloadedAt = &downloadedAt

	return r.PutSyncState(ctx, accountID, state)
}
