package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/loyalty-keeper/models"
)

// ── Campaigns ────────────────────────────────────────────────────────────────

func TestCampaignRepository_SaveAndHardDelete(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	saved, err := storages.Campaigns.SaveCampaign(ctx, models.Campaign{
		AccountID: testAccountID,
		Name:      "Double stamps week",
		Type:      models.CampaignTypeBonusReward,
		Status:    models.CampaignStatusActive,
		Conditions: models.CampaignConditions{
			RewardData: models.CampaignRewardData{StampsRequired: 5, PIN: "9999"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	// кампании удаляются жёстко, без надгробий
	require.NoError(t, storages.Campaigns.DeleteCampaign(ctx, testAccountID, saved.ID))

	all, err := storages.Campaigns.GetAllCampaigns(ctx, testAccountID)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = storages.Campaigns.GetCampaignByID(ctx, testAccountID, saved.ID)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignRepository_DeleteCampaign_NotFound(t *testing.T) {
	storages := newTestStorages(t)

	err := storages.Campaigns.DeleteCampaign(testContext(), testAccountID, "missing")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignRepository_SaveAllCampaigns_SkipDirty(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	campaigns := []models.Campaign{{ID: "c1", AccountID: testAccountID, Name: "a"}}
	require.NoError(t, storages.Campaigns.SaveAllCampaigns(ctx, testAccountID, campaigns, true))

	state, err := storages.SyncState.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)
	assert.False(t, state.HasUnsyncedChanges)
}

// ── Customers ────────────────────────────────────────────────────────────────

func TestCustomerRepository_SaveAndHardDelete(t *testing.T) {
	storages := newTestStorages(t)
	ctx := testContext()

	saved, err := storages.Customers.SaveCustomer(ctx, models.Customer{
		AccountID: testAccountID,
		Name:      "Alex",
		Stamps:    7,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	state, err := storages.SyncState.GetSyncState(ctx, testAccountID)
	require.NoError(t, err)
	assert.True(t, state.HasUnsyncedChanges)

	require.NoError(t, storages.Customers.DeleteCustomer(ctx, testAccountID, saved.ID))

	all, err := storages.Customers.GetAllCustomers(ctx, testAccountID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCustomerRepository_GetCustomerByID_NotFound(t *testing.T) {
	storages := newTestStorages(t)

	_, err := storages.Customers.GetCustomerByID(testContext(), testAccountID, "missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
