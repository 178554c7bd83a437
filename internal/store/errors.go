package store

import "errors"

// Sentinel errors returned by the key-value layer and the entity
// repositories. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by [KeyValueStore.Get] when no value is
	// stored under the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrProfileNotFound is returned when the local repository holds no
	// profile record for the requested account.
	ErrProfileNotFound = errors.New("business profile was not found")

	// ErrRewardNotFound is returned when a reward lookup by id produces no
	// match in the local collection.
	ErrRewardNotFound = errors.New("reward was not found")

	// ErrCampaignNotFound is returned when a campaign lookup by id produces
	// no match in the local collection.
	ErrCampaignNotFound = errors.New("campaign was not found")

	// ErrCustomerNotFound is returned when a customer lookup by id produces
	// no match in the local collection.
	ErrCustomerNotFound = errors.New("customer was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by the
// SQLite key-value store when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrExecutingQuery is returned when executing a SELECT against the kv
	// table fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) against the kv table fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan kv row")
)
