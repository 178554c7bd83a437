package store

import (
	"context"
	"fmt"
	"time"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/models"
)

type profileRepository struct {
	kv     KeyValueStore
	dirty  DirtyMarker
	logger *logger.Logger

	now func() time.Time
}

func NewProfileRepository(kv KeyValueStore, dirty DirtyMarker, logger *logger.Logger) ProfileRepository {
	return &profileRepository{
		kv:     kv,
		dirty:  dirty,
		logger: logger,
		now:    time.Now,
	}
}

func (r *profileRepository) GetProfile(ctx context.Context, accountID string) (models.Profile, error) {
	profile, found, err := readDocument[models.Profile](ctx, r.kv, profileKey(accountID))
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile (account=%s): %w", accountID, err)
	}
	if !found {
		return models.Profile{}, ErrProfileNotFound
	}

	return profile, nil
}

func (r *profileRepository) SaveProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	existing, found, err := readDocument[models.Profile](ctx, r.kv, profileKey(profile.AccountID))
	if err != nil {
		return models.Profile{}, fmt.Errorf("save profile (account=%s): %w", profile.AccountID, err)
	}

	now := r.now()
	if found {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err = writeDocument(ctx, r.kv, profileKey(profile.AccountID), profile); err != nil {
		log.Err(err).
			Str("func", "profileRepository.SaveProfile").
			Str("account_id", profile.AccountID).
			Msg("failed to persist profile")
		return models.Profile{}, err
	}

	if err = r.dirty.MarkDirty(ctx, profile.AccountID); err != nil {
		return models.Profile{}, fmt.Errorf("mark dirty after profile save: %w", err)
	}

	return profile, nil
}

func (r *profileRepository) ReplaceProfile(ctx context.Context, profile models.Profile, skipDirty bool) error {
	log := logger.FromContext(ctx)

	if err := writeDocument(ctx, r.kv, profileKey(profile.AccountID), profile); err != nil {
		log.Err(err).
			Str("func", "profileRepository.ReplaceProfile").
			Str("account_id", profile.AccountID).
			Msg("failed to replace profile")
		return err
	}

	if skipDirty {
		return nil
	}

	if err := r.dirty.MarkDirty(ctx, profile.AccountID); err != nil {
		return fmt.Errorf("mark dirty after profile replace: %w", err)
	}

	return nil
}
