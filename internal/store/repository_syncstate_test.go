package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
)

// ── MarkDirty ────────────────────────────────────────────────────────────────

func TestSyncStateRepository_MarkDirty_AdvancesLastModified(t *testing.T) {
	repo := NewSyncStateRepository(NewMemoryKeyValueStore(), logger.Nop())
	ctx := testContext()

	require.NoError(t, repo.MarkDirty(ctx, testAccountID))

	first, err := repo.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)
	require.NotNil(t, first.LastModified)
	assert.True(t, first.HasUnsyncedChanges)
	assert.EqualValues(t, 1, first.Version)

	require.NoError(t, repo.MarkDirty(ctx, testAccountID))

	second, err := repo.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)
	require.NotNil(t, second.LastModified)

	// отметка монотонно растёт: повторный вызов безопасен
	assert.False(t, second.LastModified.Before(*first.LastModified))
	assert.EqualValues(t, 2, second.Version)
}

// ── MarkSynced ───────────────────────────────────────────────────────────────

func TestSyncStateRepository_MarkSynced_KeepsLastModified(t *testing.T) {
	repo := NewSyncStateRepository(NewMemoryKeyValueStore(), logger.Nop())
	ctx := testContext()

	require.NoError(t, repo.MarkDirty(ctx, testAccountID))
	before, err := repo.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)

	syncedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkSynced(ctx, testAccountID, syncedAt))

	after, err := repo.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)

	assert.False(t, after.HasUnsyncedChanges)
	require.NotNil(t, after.LastSyncedAt)
	assert.Equal(t, syncedAt, *after.LastSyncedAt)
	// push не трогает LastModified
	assert.Equal(t, *before.LastModified, *after.LastModified)
}

// ── MarkPulled ───────────────────────────────────────────────────────────────

func TestSyncStateRepository_MarkPulled_SetsRemoteTimestamp(t *testing.T) {
	repo := NewSyncStateRepository(NewMemoryKeyValueStore(), logger.Nop())
	ctx := testContext()

	remoteTS := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	syncedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.MarkPulled(ctx, testAccountID, syncedAt, remoteTS))

	state, err := repo.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)

	assert.False(t, state.HasUnsyncedChanges)
	require.NotNil(t, state.LastModified)
	// после pull LastModified — это удалённая метка, а не «сейчас»
	assert.Equal(t, remoteTS, *state.LastModified)
	require.NotNil(t, state.LastSyncedAt)
	assert.Equal(t, syncedAt, *state.LastSyncedAt)
}

// ── MarkDownloaded ───────────────────────────────────────────────────────────

func TestSyncStateRepository_MarkDownloaded_OnlyDownloadStamp(t *testing.T) {
	repo := NewSyncStateRepository(NewMemoryKeyValueStore(), logger.Nop())
	ctx := testContext()

	downloadedAt := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkDownloaded(ctx, testAccountID, downloadedAt))

	state, err := repo.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)

	require.NotNil(t, state.LastDownloadedAt)
	assert.Equal(t, downloadedAt, *state.LastDownloadedAt)
	assert.Nil(t, state.LastModified)
	assert.Nil(t, state.LastSyncedAt)
	assert.False(t, state.HasUnsyncedChanges)
}

// ── GetSyncState ─────────────────────────────────────────────────────────────

func TestSyncStateRepository_GetSyncState_MissingIsZeroValue(t *testing.T) {
	repo := NewSyncStateRepository(NewMemoryKeyValueStore(), logger.Nop())

	state, err := repo.GetSyncState(testContext(), "never-seen")
	require.NoError(t, err)
	assert.Nil(t, state.LastModified)
	assert.False(t, state.HasUnsyncedChanges)
	assert.Zero(t, state.Version)
}
