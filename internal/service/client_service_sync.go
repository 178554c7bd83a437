package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/stampdeck/loyalty-keeper/internal/adapter"
	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/internal/store"
	"github.com/stampdeck/loyalty-keeper/models"
)

// freshnessRetryDelay is the pause between repeated attempts to read the
// remote freshness timestamp. The read is retried up to 2 extra times before
// the sync fails with [ErrComparisonUnavailable].
const freshnessRetryDelay = 500 * time.Millisecond

type clientSyncService struct {
	storages *store.ClientStorages
	remote   adapter.RemoteStore
	logger   *logger.Logger

	// inFlight rejects overlapping runs: at most one sync or bulk download
	// may execute at a time, and a second request is refused synchronously
	// rather than queued.
	inFlight atomic.Bool

	now        func() time.Time
	retryDelay time.Duration
}

// NewClientSyncService constructs the unified sync engine over the local
// storage layer and the remote store adapter.
func NewClientSyncService(storages *store.ClientStorages, remote adapter.RemoteStore, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		storages:   storages,
		remote:     remote,
		logger:     logger,
		now:        time.Now,
		retryDelay: freshnessRetryDelay,
	}
}

// Sync implements [ClientSyncService].
//
// The engine reads the local LastModified and the remote profile's UpdatedAt,
// picks a direction (local newer: push; remote newer: pull; equal: no-op) and
// executes a full-replacement transfer. A failed sync leaves
// HasUnsyncedChanges raised so the next attempt retries from scratch; no
// partial resume state is persisted.
func (s *clientSyncService) Sync(ctx context.Context, accountID string) models.SyncResult {
	result := models.SyncResult{Direction: models.SyncDirectionNone}

	if !s.inFlight.CompareAndSwap(false, true) {
		result.Errors = append(result.Errors, ErrSyncInProgress.Error())
		return result
	}
	defer s.inFlight.Store(false)

	localState, err := s.storages.SyncState.GetSyncState(ctx, accountID)
	if err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("sync: local timestamp unobtainable")
		result.Errors = append(result.Errors, fmt.Errorf("%w: local: %w", ErrComparisonUnavailable, err).Error())
		return result
	}

	remoteProfile, err := s.fetchRemoteProfile(ctx, accountID)
	if err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("sync: remote timestamp unobtainable after retries")
		result.Errors = append(result.Errors, fmt.Errorf("%w: remote: %w", ErrComparisonUnavailable, err).Error())
		return result
	}

	localTS := time.Time{}
	if localState.LastModified != nil {
		localTS = *localState.LastModified
	}
	remoteTS := remoteProfile.UpdatedAt

	switch {
	case localTS.After(remoteTS):
		result.Direction = models.SyncDirectionPush
		s.push(ctx, accountID, &result)
	case remoteTS.After(localTS):
		result.Direction = models.SyncDirectionPull
		s.pull(ctx, accountID, remoteProfile, &result)
	default:
		// equal instants: nothing to transfer, metadata stays untouched
		s.logger.Info().Str("account_id", accountID).Msg("sync: timestamps equal, nothing to do")
		result.Success = true
	}

	return result
}

// FirstLoginDownload implements [ClientSyncService]. It hydrates an empty
// local repository from the remote store: a pull-only pass that records
// LastDownloadedAt and leaves LastModified alone, so the next regular sync
// still compares against the remote timestamp the download delivered.
func (s *clientSyncService) FirstLoginDownload(ctx context.Context, accountID string) models.SyncResult {
	result := models.SyncResult{Direction: models.SyncDirectionPull}

	if !s.inFlight.CompareAndSwap(false, true) {
		result.Errors = append(result.Errors, ErrSyncInProgress.Error())
		return result
	}
	defer s.inFlight.Store(false)

	remoteProfile, err := s.fetchRemoteProfile(ctx, accountID)
	if err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("first-login download: remote profile unobtainable")
		result.Errors = append(result.Errors, fmt.Sprintf("profile: %v", err))
		return result
	}

	if !s.replaceLocal(ctx, accountID, remoteProfile, &result) {
		return result
	}

	if err = s.storages.SyncState.MarkDownloaded(ctx, accountID, s.now()); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("sync state: %v", err))
		return result
	}

	s.logger.Info().
		Str("account_id", accountID).
		Int("rewards", result.Counts.Rewards).
		Int("campaigns", result.Counts.Campaigns).
		Int("customers", result.Counts.Customers).
		Msg("first-login download: local repository hydrated")

	result.Success = true
	return result
}

// fetchRemoteProfile reads the remote profile record, whose UpdatedAt is the
// whole-repository freshness timestamp. The read is retried up to 2 extra
// times with a constant delay.
func (s *clientSyncService) fetchRemoteProfile(ctx context.Context, accountID string) (models.Profile, error) {
	var profile models.Profile

	backoff := retry.WithMaxRetries(2, retry.NewConstant(s.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		p, err := s.remote.GetProfile(ctx, accountID)
		if err != nil {
			return retry.RetryableError(err)
		}
		profile = p
		return nil
	})
	if err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// push transfers the local repository to the remote store: profile first,
// then rewards and campaigns via delete-then-write-all, then customers, then
// a final freshness re-stamp. Entity snapshots are taken before the first
// remote call so a concurrent local edit cannot produce a push that mixes
// two different local states.
func (s *clientSyncService) push(ctx context.Context, accountID string, result *models.SyncResult) {
	profile, err := s.storages.Profiles.GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			err = ErrNoLocalProfile
		}
		result.Errors = append(result.Errors, fmt.Sprintf("profile: %v", err))
		return
	}

	rewards, err := s.storages.Rewards.GetAllRewards(ctx, accountID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("rewards: %v", err))
		return
	}
	campaigns, err := s.storages.Campaigns.GetAllCampaigns(ctx, accountID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("campaigns: %v", err))
		return
	}
	customers, err := s.storages.Customers.GetAllCustomers(ctx, accountID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("customers: %v", err))
		return
	}

	if err = s.remote.PutProfile(ctx, profile); err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("push: profile write failed")
		result.Errors = append(result.Errors, fmt.Sprintf("profile: %v", err))
		return
	}
	s.logger.Debug().Str("account_id", accountID).Msg("push: profile written")
	result.Counts.Profile = 1

	if !s.pushRewards(ctx, accountID, rewards, result) {
		return
	}
	if !s.pushCampaigns(ctx, accountID, campaigns, result) {
		return
	}
	if !s.pushCustomers(ctx, customers, result) {
		return
	}

	// re-stamp the remote freshness timestamp as the very last transfer
	// step, so subsequent comparisons see this push as authoritative
	profile.UpdatedAt = s.now()
	if err = s.remote.PutProfile(ctx, profile); err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("push: freshness re-stamp failed")
		result.Errors = append(result.Errors, fmt.Sprintf("profile stamp: %v", err))
		return
	}

	if err = s.storages.SyncState.MarkSynced(ctx, accountID, s.now()); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("sync state: %v", err))
		return
	}

	result.Success = true
}

// pushRewards makes the remote reward set exactly equal the local active set:
// every remote reward of the account is deleted, then every active local
// reward is written. An individual delete failure is tolerated; any write
// failure aborts the push. Reports whether the push may continue.
func (s *clientSyncService) pushRewards(ctx context.Context, accountID string, local []models.Reward, result *models.SyncResult) bool {
	remoteRewards, err := s.remote.ListRewards(ctx, accountID)
	if err != nil {
		// treated like a failed delete of stale records: losing the
		// cleanup pass is less harmful than aborting the whole sync
		s.logger.Err(err).Str("account_id", accountID).Msg("push: listing remote rewards failed, skipping delete pass")
		result.Errors = append(result.Errors, fmt.Sprintf("rewards list: %v", err))
		remoteRewards = nil
	}

	for _, remoteReward := range remoteRewards {
		if err := s.remote.DeleteReward(ctx, remoteReward.ID); err != nil {
			s.logger.Err(err).Str("reward_id", remoteReward.ID).Msg("push: deleting remote reward failed, continuing")
			result.Errors = append(result.Errors, fmt.Sprintf("reward delete %s: %v", remoteReward.ID, err))
			continue
		}
		s.logger.Debug().Str("reward_id", remoteReward.ID).Msg("push: remote reward deleted")
	}

	for _, reward := range local {
		// tombstoned/inactive rewards never leave the device
		if !reward.Active {
			continue
		}
		if err := s.remote.CreateReward(ctx, reward); err != nil {
			s.logger.Err(err).Str("reward_id", reward.ID).Msg("push: writing reward failed, aborting")
			result.Errors = append(result.Errors, fmt.Sprintf("reward %s: %v", reward.ID, err))
			return false
		}
		s.logger.Debug().Str("reward_id", reward.ID).Msg("push: reward written")
		result.Counts.Rewards++
	}

	return true
}

// pushCampaigns mirrors pushRewards for the campaign collection.
func (s *clientSyncService) pushCampaigns(ctx context.Context, accountID string, local []models.Campaign, result *models.SyncResult) bool {
	remoteCampaigns, err := s.remote.ListCampaigns(ctx, accountID)
	if err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("push: listing remote campaigns failed, skipping delete pass")
		result.Errors = append(result.Errors, fmt.Sprintf("campaigns list: %v", err))
		remoteCampaigns = nil
	}

	for _, remoteCampaign := range remoteCampaigns {
		if err := s.remote.DeleteCampaign(ctx, remoteCampaign.ID); err != nil {
			s.logger.Err(err).Str("campaign_id", remoteCampaign.ID).Msg("push: deleting remote campaign failed, continuing")
			result.Errors = append(result.Errors, fmt.Sprintf("campaign delete %s: %v", remoteCampaign.ID, err))
			continue
		}
		s.logger.Debug().Str("campaign_id", remoteCampaign.ID).Msg("push: remote campaign deleted")
	}

	for _, campaign := range local {
		if err := s.remote.CreateCampaign(ctx, campaign); err != nil {
			s.logger.Err(err).Str("campaign_id", campaign.ID).Msg("push: writing campaign failed, aborting")
			result.Errors = append(result.Errors, fmt.Sprintf("campaign %s: %v", campaign.ID, err))
			return false
		}
		s.logger.Debug().Str("campaign_id", campaign.ID).Msg("push: campaign written")
		result.Counts.Campaigns++
	}

	return true
}

// pushCustomers writes every local customer with create-or-update semantics.
// Customers are never soft-deleted locally, so no delete pass is needed.
func (s *clientSyncService) pushCustomers(ctx context.Context, local []models.Customer, result *models.SyncResult) bool {
	for _, customer := range local {
		if err := s.remote.CreateCustomer(ctx, customer); err != nil {
			s.logger.Err(err).Str("customer_id", customer.ID).Msg("push: writing customer failed, aborting")
			result.Errors = append(result.Errors, fmt.Sprintf("customer %s: %v", customer.ID, err))
			return false
		}
		s.logger.Debug().Str("customer_id", customer.ID).Msg("push: customer written")
		result.Counts.Customers++
	}

	return true
}

// pull replaces the local repository with the remote snapshot, then advances
// both sync stamps: LastModified becomes the remote freshness timestamp that
// was read, never "now".
func (s *clientSyncService) pull(ctx context.Context, accountID string, remoteProfile models.Profile, result *models.SyncResult) {
	if !s.replaceLocal(ctx, accountID, remoteProfile, result) {
		return
	}

	if err := s.storages.SyncState.MarkPulled(ctx, accountID, s.now(), remoteProfile.UpdatedAt); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("sync state: %v", err))
		return
	}

	s.logger.Info().
		Str("account_id", accountID).
		Int("rewards", result.Counts.Rewards).
		Int("campaigns", result.Counts.Campaigns).
		Int("customers", result.Counts.Customers).
		Msg("pull: local repository replaced")

	result.Success = true
}

// replaceLocal is the shared body of pull and the first-login download. All
// remote record sets are read before the first local write, so a failed read
// leaves local state completely untouched. Rewards pass through the tombstone
// merge so a local deletion survives a stale remote copy, and every local
// write takes the skipDirty path: replacing from remote must never mark the
// repository dirty. Reports whether the replacement completed.
func (s *clientSyncService) replaceLocal(ctx context.Context, accountID string, remoteProfile models.Profile, result *models.SyncResult) bool {
	remoteRewards, err := s.remote.ListRewards(ctx, accountID)
	if err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("pull: reading remote rewards failed, aborting")
		result.Errors = append(result.Errors, fmt.Sprintf("rewards: %v", err))
		return false
	}
	remoteCampaigns, err := s.remote.ListCampaigns(ctx, accountID)
	if err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("pull: reading remote campaigns failed, aborting")
		result.Errors = append(result.Errors, fmt.Sprintf("campaigns: %v", err))
		return false
	}
	remoteCustomers, err := s.remote.ListCustomers(ctx, accountID)
	if err != nil {
		s.logger.Err(err).Str("account_id", accountID).Msg("pull: reading remote customers failed, aborting")
		result.Errors = append(result.Errors, fmt.Sprintf("customers: %v", err))
		return false
	}

	tombstones, err := s.storages.Rewards.GetTombstones(ctx, accountID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("tombstones: %v", err))
		return false
	}
	mergedRewards := mergeRewardsWithTombstones(remoteRewards, tombstones)

	if err = s.storages.Profiles.ReplaceProfile(ctx, remoteProfile, true); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("profile: %v", err))
		return false
	}
	result.Counts.Profile = 1

	if err = s.storages.Rewards.SaveAllRewards(ctx, accountID, mergedRewards, true); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("rewards: %v", err))
		return false
	}
	result.Counts.Rewards = len(mergedRewards)

	if err = s.storages.Campaigns.SaveAllCampaigns(ctx, accountID, remoteCampaigns, true); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("campaigns: %v", err))
		return false
	}
	result.Counts.Campaigns = len(remoteCampaigns)

	if err = s.storages.Customers.SaveAllCustomers(ctx, accountID, remoteCustomers, true); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("customers: %v", err))
		return false
	}
	result.Counts.Customers = len(remoteCustomers)

	return true
}
