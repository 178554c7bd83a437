package store

// Key layout of the local repository. Each collection lives under its own
// stable key so that partial reads and writes remain possible; every key is
// scoped by the account it belongs to, never by ambient global state.
const (
	keyPrefix = "acct/"

	profileSuffix    = "/profile"
	rewardsSuffix    = "/rewards"
	campaignsSuffix  = "/campaigns"
	customersSuffix  = "/customers"
	tombstonesSuffix = "/tombstones"
	syncStateSuffix  = "/syncstate"
)

func accountPrefix(accountID string) string {
	return keyPrefix + accountID
}

func profileKey(accountID string) string {
	return accountPrefix(accountID) + profileSuffix
}

func rewardsKey(accountID string) string {
	return accountPrefix(accountID) + rewardsSuffix
}

func campaignsKey(accountID string) string {
	return accountPrefix(accountID) + campaignsSuffix
}

func customersKey(accountID string) string {
	return accountPrefix(accountID) + customersSuffix
}

func tombstonesKey(accountID string) string {
	return accountPrefix(accountID) + tombstonesSuffix
}

func syncStateKey(accountID string) string {
	return accountPrefix(accountID) + syncStateSuffix
}
