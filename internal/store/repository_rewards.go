package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/models"
)

type rewardRepository struct {
	kv     KeyValueStore
	dirty  DirtyMarker
	logger *logger.Logger

	now func() time.Time
}

func NewRewardRepository(kv KeyValueStore, dirty DirtyMarker, logger *logger.Logger) RewardRepository {
	return &rewardRepository{
		kv:     kv,
		dirty:  dirty,
		logger: logger,
		now:    time.Now,
	}
}

func (r *rewardRepository) GetAllRewards(ctx context.Context, accountID string) ([]models.Reward, error) {
	rewards, _, err := readDocument[[]models.Reward](ctx, r.kv, rewardsKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("get all rewards (account=%s): %w", accountID, err)
	}

	return rewards, nil
}

func (r *rewardRepository) GetRewardByID(ctx context.Context, accountID, rewardID string) (models.Reward, error) {
	rewards, err := r.GetAllRewards(ctx, accountID)
	if err != nil {
		return models.Reward{}, err
	}

	for _, reward := range rewards {
		if reward.ID == rewardID {
			return reward, nil
		}
	}

	return models.Reward{}, ErrRewardNotFound
}

func (r *rewardRepository) SaveReward(ctx context.Context, reward models.Reward) (models.Reward, error) {
	log := logger.FromContext(ctx)

	rewards, err := r.GetAllRewards(ctx, reward.AccountID)
	if err != nil {
		return models.Reward{}, err
	}

	now := r.now()
	if reward.ID == "" {
		reward.ID = newEntityID()
	}
	reward.UpdatedAt = now

	replaced := false
	for i := range rewards {
		if rewards[i].ID == reward.ID {
			reward.CreatedAt = rewards[i].CreatedAt
			rewards[i] = reward
			replaced = true
			break
		}
	}
	if !replaced {
		reward.CreatedAt = now
		rewards = append(rewards, reward)
	}

	if err = writeDocument(ctx, r.kv, rewardsKey(reward.AccountID), rewards); err != nil {
		log.Err(err).
			Str("func", "rewardRepository.SaveReward").
			Str("account_id", reward.AccountID).
			Str("reward_id", reward.ID).
			Msg("failed to persist rewards")
		return models.Reward{}, err
	}

	if err = r.dirty.MarkDirty(ctx, reward.AccountID); err != nil {
		return models.Reward{}, fmt.Errorf("mark dirty after reward save: %w", err)
	}

	return reward, nil
}

func (r *rewardRepository) SaveAllRewards(ctx context.Context, accountID string, rewards []models.Reward, skipDirty bool) error {
	log := logger.FromContext(ctx)

	if rewards == nil {
		rewards = []models.Reward{}
	}

	if err := writeDocument(ctx, r.kv, rewardsKey(accountID), rewards); err != nil {
		log.Err(err).
			Str("func", "rewardRepository.SaveAllRewards").
			Str("account_id", accountID).
			Int("count", len(rewards)).
			Msg("failed to replace rewards collection")
		return err
	}

	if skipDirty {
		return nil
	}

	if err := r.dirty.MarkDirty(ctx, accountID); err != nil {
		return fmt.Errorf("mark dirty after rewards replace: %w", err)
	}

	return nil
}

// DeleteReward soft-deletes: the reward stays in the main collection with
// Active cleared so "all rewards" listings can still distinguish a recently
// deactivated reward from one that never existed, and a verbatim inactive
// copy is appended to the tombstone ledger so a pull can never resurrect it.
func (r *rewardRepository) DeleteReward(ctx context.Context, accountID, rewardID string) error {
	log := logger.FromContext(ctx)

	rewards, err := r.GetAllRewards(ctx, accountID)
	if err != nil {
		return err
	}

	var deleted *models.Reward
	now := r.now()
	for i := range rewards {
		if rewards[i].ID == rewardID {
			rewards[i].Active = false
			rewards[i].UpdatedAt = now
			deleted = &rewards[i]
			break
		}
	}
	if deleted == nil {
		return ErrRewardNotFound
	}

	if err = writeDocument(ctx, r.kv, rewardsKey(accountID), rewards); err != nil {
		log.Err(err).
			Str("func", "rewardRepository.DeleteReward").
			Str("account_id", accountID).
			Str("reward_id", rewardID).
			Msg("failed to persist rewards after soft delete")
		return err
	}

	if err = r.appendTombstone(ctx, accountID, *deleted); err != nil {
		return err
	}

	if err = r.dirty.MarkDirty(ctx, accountID); err != nil {
		return fmt.Errorf("mark dirty after reward delete: %w", err)
	}

	return nil
}

func (r *rewardRepository) GetTombstones(ctx context.Context, accountID string) ([]models.Reward, error) {
	tombstones, _, err := readDocument[[]models.Reward](ctx, r.kv, tombstonesKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("get tombstones (account=%s): %w", accountID, err)
	}

	return tombstones, nil
}

func (r *rewardRepository) appendTombstone(ctx context.Context, accountID string, reward models.Reward) error {
	log := logger.FromContext(ctx)

	tombstones, err := r.GetTombstones(ctx, accountID)
	if err != nil {
		return err
	}

	reward.Active = false

	replaced := false
	for i := range tombstones {
		if tombstones[i].ID == reward.ID {
			tombstones[i] = reward
			replaced = true
			break
		}
	}
	if !replaced {
		tombstones = append(tombstones, reward)
	}

	if err = writeDocument(ctx, r.kv, tombstonesKey(accountID), tombstones); err != nil {
		log.Err(err).
			Str("func", "rewardRepository.appendTombstone").
			Str("account_id", accountID).
			Str("reward_id", reward.ID).
			Msg("failed to persist tombstone ledger")
		return err
	}

	return nil
}

func newEntityID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
