// Package adapter provides transport-layer abstractions for communicating
// with the remote loyalty store.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/stampdeck/loyalty-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the remote
// authoritative loyalty store. Implementations are responsible for
// serialisation, authentication header management, and mapping
// transport-level errors to the sentinel values defined in this package.
//
// The store is key-addressed and offers no multi-record transactions; the
// sync engine sequences its calls and owns all atomicity reasoning.
type RemoteStore interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// GetProfile fetches the remote business profile. The returned
	// profile's UpdatedAt is the whole-repository freshness timestamp: the
	// remote side re-stamps it whenever any part of the account's data
	// changes, and the sync engine compares it against the local
	// LastModified to choose a direction.
	GetProfile(ctx context.Context, accountID string) (models.Profile, error)

	// PutProfile fully replaces the remote profile record. The sync engine
	// calls it twice per push: once to transfer profile fields and once, as
	// the final step, to re-stamp the freshness timestamp.
	PutProfile(ctx context.Context, profile models.Profile) error

	ListRewards(ctx context.Context, accountID string) ([]models.Reward, error)
	// CreateReward writes one reward with create-or-update semantics.
	CreateReward(ctx context.Context, reward models.Reward) error
	DeleteReward(ctx context.Context, rewardID string) error

	ListCampaigns(ctx context.Context, accountID string) ([]models.Campaign, error)
	CreateCampaign(ctx context.Context, campaign models.Campaign) error
	DeleteCampaign(ctx context.Context, campaignID string) error

	ListCustomers(ctx context.Context, accountID string) ([]models.Customer, error)
	// CreateCustomer writes one customer with create-or-update semantics.
	// There is no customer delete: customers are never soft-deleted by this
	// client, so pushes do not need a delete-then-write pass for them.
	CreateCustomer(ctx context.Context, customer models.Customer) error
}
