package store

import (
	"context"
	"fmt"
	"time"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/models"
)

type campaignRepository struct {
	kv     KeyValueStore
	dirty  DirtyMarker
	logger *logger.Logger

	now func() time.Time
}

func NewCampaignRepository(kv KeyValueStore, dirty DirtyMarker, logger *logger.Logger) CampaignRepository {
	return &campaignRepository{
		kv:     kv,
		dirty:  dirty,
		logger: logger,
		now:    time.Now,
	}
}

func (r *campaignRepository) GetAllCampaigns(ctx context.Context, accountID string) ([]models.Campaign, error) {
	campaigns, _, err := readDocument[[]models.Campaign](ctx, r.kv, campaignsKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("get all campaigns (account=%s): %w", accountID, err)
	}

	return campaigns, nil
}

func (r *campaignRepository) GetCampaignByID(ctx context.Context, accountID, campaignID string) (models.Campaign, error) {
	campaigns, err := r.GetAllCampaigns(ctx, accountID)
	if err != nil {
		return models.Campaign{}, err
	}

	for _, campaign := range campaigns {
		if campaign.ID == campaignID {
			return campaign, nil
		}
	}

	return models.Campaign{}, ErrCampaignNotFound
}

func (r *campaignRepository) SaveCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error) {
	log := logger.FromContext(ctx)

	campaigns, err := r.GetAllCampaigns(ctx, campaign.AccountID)
	if err != nil {
		return models.Campaign{}, err
	}

	now := r.now()
	if campaign.ID == "" {
		campaign.ID = newEntityID()
	}
	campaign.UpdatedAt = now

	replaced := false
	for i := range campaigns {
		if campaigns[i].ID == campaign.ID {
			campaign.CreatedAt = campaigns[i].CreatedAt
			campaigns[i] = campaign
			replaced = true
			break
		}
	}
	if !replaced {
		campaign.CreatedAt = now
		campaigns = append(campaigns, campaign)
	}

	if err = writeDocument(ctx, r.kv, campaignsKey(campaign.AccountID), campaigns); err != nil {
		log.Err(err).
			Str("func", "campaignRepository.SaveCampaign").
			Str("account_id", campaign.AccountID).
			Str("campaign_id", campaign.ID).
			Msg("failed to persist campaigns")
		return models.Campaign{}, err
	}

	if err = r.dirty.MarkDirty(ctx, campaign.AccountID); err != nil {
		return models.Campaign{}, fmt.Errorf("mark dirty after campaign save: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) SaveAllCampaigns(ctx context.Context, accountID string, campaigns []models.Campaign, skipDirty bool) error {
	log := logger.FromContext(ctx)

	if campaigns == nil {
		campaigns = []models.Campaign{}
	}

	if err := writeDocument(ctx, r.kv, campaignsKey(accountID), campaigns); err != nil {
		log.Err(err).
			Str("func", "campaignRepository.SaveAllCampaigns").
			Str("account_id", accountID).
			Int("count", len(campaigns)).
			Msg("failed to replace campaigns collection")
		return err
	}

	if skipDirty {
		return nil
	}

	if err := r.dirty.MarkDirty(ctx, accountID); err != nil {
		return fmt.Errorf("mark dirty after campaigns replace: %w", err)
	}

	return nil
}

func (r *campaignRepository) DeleteCampaign(ctx context.Context, accountID, campaignID string) error {
	log := logger.FromContext(ctx)

	campaigns, err := r.GetAllCampaigns(ctx, accountID)
	if err != nil {
		return err
	}

	filtered := campaigns[:0]
	found := false
	for _, campaign := range campaigns {
		if campaign.ID == campaignID {
			found = true
			continue
		}
		filtered = append(filtered, campaign)
	}
	if !found {
		return ErrCampaignNotFound
	}

	if err = writeDocument(ctx, r.kv, campaignsKey(accountID), filtered); err != nil {
		log.Err(err).
			Str("func", "campaignRepository.DeleteCampaign").
			Str("account_id", accountID).
			Str("campaign_id", campaignID).
			Msg("failed to persist campaigns after delete")
		return err
	}

	if err = r.dirty.MarkDirty(ctx, accountID); err != nil {
		return fmt.Errorf("mark dirty after campaign delete: %w", err)
	}

	return nil
}
