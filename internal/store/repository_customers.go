package store

import (
	"context"
	"fmt"
	"time"

	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/models"
)

type customerRepository struct {
	kv     KeyValueStore
	dirty  DirtyMarker
	logger *logger.Logger

	now func() time.Time
}

func NewCustomerRepository(kv KeyValueStore, dirty DirtyMarker, logger *logger.Logger) CustomerRepository {
	return &customerRepository{
		kv:     kv,
		dirty:  dirty,
		logger: logger,
		now:    time.Now,
	}
}

func (r *customerRepository) GetAllCustomers(ctx context.Context, accountID string) ([]models.Customer, error) {
	customers, _, err := readDocument[[]models.Customer](ctx, r.kv, customersKey(accountID))
	if err != nil {
		return nil, fmt.Errorf("get all customers (account=%s): %w", accountID, err)
	}

	return customers, nil
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, accountID, customerID string) (models.Customer, error) {
	customers, err := r.GetAllCustomers(ctx, accountID)
	if err != nil {
		return models.Customer{}, err
	}

	for _, customer := range customers {
		if customer.ID == customerID {
			return customer, nil
		}
	}

	return models.Customer{}, ErrCustomerNotFound
}

func (r *customerRepository) SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	log := logger.FromContext(ctx)

	customers, err := r.GetAllCustomers(ctx, customer.AccountID)
	if err != nil {
		return models.Customer{}, err
	}

	now := r.now()
	if customer.ID == "" {
		customer.ID = newEntityID()
	}
	customer.UpdatedAt = now

	replaced := false
	for i := range customers {
		if customers[i].ID == customer.ID {
			customer.CreatedAt = customers[i].CreatedAt
			customers[i] = customer
			replaced = true
			break
		}
	}
	if !replaced {
		customer.CreatedAt = now
		customers = append(customers, customer)
	}

	if err = writeDocument(ctx, r.kv, customersKey(customer.AccountID), customers); err != nil {
		log.Err(err).
			Str("func", "customerRepository.SaveCustomer").
			Str("account_id", customer.AccountID).
			Str("customer_id", customer.ID).
			Msg("failed to persist customers")
		return models.Customer{}, err
	}

	if err = r.dirty.MarkDirty(ctx, customer.AccountID); err != nil {
		return models.Customer{}, fmt.Errorf("mark dirty after customer save: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) SaveAllCustomers(ctx context.Context, accountID string, customers []models.Customer, skipDirty bool) error {
	log := logger.FromContext(ctx)

	if customers == nil {
		customers = []models.Customer{}
	}

	if err := writeDocument(ctx, r.kv, customersKey(accountID), customers); err != nil {
		log.Err(err).
			Str("func", "customerRepository.SaveAllCustomers").
			Str("account_id", accountID).
			Int("count", len(customers)).
			Msg("failed to replace customers collection")
		return err
	}

	if skipDirty {
		return nil
	}

	if err := r.dirty.MarkDirty(ctx, accountID); err != nil {
		return fmt.Errorf("mark dirty after customers replace: %w", err)
	}

	return nil
}

func (r *customerRepository) DeleteCustomer(ctx context.Context, accountID, customerID string) error {
	log := logger.FromContext(ctx)

	customers, err := r.GetAllCustomers(ctx, accountID)
	if err != nil {
		return err
	}

	filtered := customers[:0]
	found := false
	for _, customer := range customers {
		if customer.ID == customerID {
			found = true
			continue
		}
		filtered = append(filtered, customer)
	}
	if !found {
		return ErrCustomerNotFound
	}

	if err = writeDocument(ctx, r.kv, customersKey(accountID), filtered); err != nil {
		log.Err(err).
			Str("func", "customerRepository.DeleteCustomer").
			Str("account_id", accountID).
			Str("customer_id", customerID).
			Msg("failed to persist customers after delete")
		return err
	}

	if err = r.dirty.MarkDirty(ctx, accountID); err != nil {
		return fmt.Errorf("mark dirty after customer delete: %w", err)
	}

	return nil
}
