package service

import "github.com/stampdeck/loyalty-keeper/models"

// mergeRewardsWithTombstones builds the final local reward set from a remote
// snapshot: every remote reward whose id appears in the tombstone ledger is
// discarded, and each tombstoned reward is added back explicitly with its
// activity flag cleared. Local deletions therefore win over the remote copy
// regardless of what state the remote store reports for those ids.
func mergeRewardsWithTombstones(remote, tombstones []models.Reward) []models.Reward {
	if len(tombstones) == 0 {
		return remote
	}

	dead := make(map[string]struct{}, len(tombstones))
	for _, tombstone := range tombstones {
		dead[tombstone.ID] = struct{}{}
	}

	merged := make([]models.Reward, 0, len(remote)+len(tombstones))
	for _, reward := range remote {
		if _, deleted := dead[reward.ID]; deleted {
			continue
		}
		merged = append(merged, reward)
	}

	for _, tombstone := range tombstones {
		tombstone.Active = false
		merged = append(merged, tombstone)
	}

	return merged
}
