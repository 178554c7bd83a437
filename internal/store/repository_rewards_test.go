package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/models"
)

const testAccountID = "acct-test"

func newTestStorages(t *testing.T) *ClientStorages {
	t.Helper()
	return NewClientStoragesWithKV(NewMemoryKeyValueStore(), logger.Nop())
}

// ── SaveReward ───────────────────────────────────────────────────────────────

func TestRewardRepository_SaveReward_AssignsIDAndStamps(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	saved, err := storages.Rewards.SaveReward(ctx, models.Reward{
		AccountID:   testAccountID,
		Name:        "Free coffee",
		Requirement: 10,
		Type:        models.RewardTypeFreeItem,
		Active:      true,
		PIN:         "1234",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())

	all, err := storages.Rewards.GetAllRewards(ctx, testAccountID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, saved.ID, all[0].ID)
}

func TestRewardRepository_SaveReward_UpsertKeepsCreatedAt(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	saved, err := storages.Rewards.SaveReward(ctx, models.Reward{
		AccountID: testAccountID, Name: "v1", Active: true,
	})
	require.NoError(t, err)

	saved.Name = "v2"
	updated, err := storages.Rewards.SaveReward(ctx, saved)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)

	all, err := storages.Rewards.GetAllRewards(ctx, testAccountID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "v2", all[0].Name)
}

func TestRewardRepository_SaveReward_MarksDirty(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	_, err := storages.Rewards.SaveReward(ctx, models.Reward{AccountID: testAccountID, Name: "r"})
	require.NoError(t, err)

	state, err := storages.SyncState.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)
	assert.True(t, state.HasUnsyncedChanges)
	require.NotNil(t, state.LastModified)
}

// ── DeleteReward (soft delete + tombstone) ───────────────────────────────────

func TestRewardRepository_DeleteReward_SoftDeleteAndTombstone(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	saved, err := storages.Rewards.SaveReward(ctx, models.Reward{
		AccountID: testAccountID, Name: "doomed", Active: true, PIN: "4321",
	})
	require.NoError(t, err)

	require.NoError(t, storages.Rewards.DeleteReward(ctx, testAccountID, saved.ID))

	// награда остаётся в основной коллекции, но деактивированной
	all, err := storages.Rewards.GetAllRewards(ctx, testAccountID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, saved.ID, all[0].ID)
	assert.False(t, all[0].Active)

	// и дословная копия лежит в реестре надгробий
	tombstones, err := storages.Rewards.GetTombstones(ctx, testAccountID)
	require.NoError(t, err)
	require.Len(t, tombstones, 1)
	assert.Equal(t, saved.ID, tombstones[0].ID)
	assert.Equal(t, "doomed", tombstones[0].Name)
	assert.Equal(t, "4321", tombstones[0].PIN)
	assert.False(t, tombstones[0].Active)
}

func TestRewardRepository_DeleteReward_NotFound(t *testing.T) {
	storages := newTestStorages(t)

	err := storages.Rewards.DeleteReward(testContext(), testAccountID, "missing")
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestRewardRepository_DeleteReward_TwiceKeepsSingleTombstone(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	saved, err := storages.Rewards.SaveReward(ctx, models.Reward{
		AccountID: testAccountID, Name: "r", Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, storages.Rewards.DeleteReward(ctx, testAccountID, saved.ID))
	require.NoError(t, storages.Rewards.DeleteReward(ctx, testAccountID, saved.ID))

	tombstones, err := storages.Rewards.GetTombstones(ctx, testAccountID)
	require.NoError(t, err)
	assert.Len(t, tombstones, 1)
}

// ── SaveAllRewards ───────────────────────────────────────────────────────────

func TestRewardRepository_SaveAllRewards_SkipDirty(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	rewards := []models.Reward{
		{ID: "r1", AccountID: testAccountID, Name: "a", Active: true},
		{ID: "r2", AccountID: testAccountID, Name: "b", Active: true},
	}

	// путь pull-а: bulk replace не должен пачкать репозиторий
	require.NoError(t, storages.Rewards.SaveAllRewards(ctx, testAccountID, rewards, true))

	state, err := storages.SyncState.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)
	assert.False(t, state.HasUnsyncedChanges)
	assert.Nil(t, state.LastModified)

	all, err := storages.Rewards.GetAllRewards(ctx, testAccountID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRewardRepository_SaveAllRewards_DirtyWhenNotSkipped(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	require.NoError(t, storages.Rewards.SaveAllRewards(ctx, testAccountID, nil, false))

	state, err := storages.SyncState.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)
	assert.True(t, state.HasUnsyncedChanges)
}

// ── GetRewardByID ────────────────────────────────────────────────────────────

func TestRewardRepository_GetRewardByID(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	saved, err := storages.Rewards.SaveReward(ctx, models.Reward{
		AccountID: testAccountID, Name: "r", Active: true,
		ValidFrom: timePtr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	got, err := storages.Rewards.GetRewardByID(ctx, testAccountID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Name, got.Name)
	require.NotNil(t, got.ValidFrom)

	_, err = storages.Rewards.GetRewardByID(ctx, testAccountID, "missing")
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func timePtr(ts time.Time) *time.Time {
	return &ts
}
