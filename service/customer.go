package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/storekit/storecore/cache"
	"github.com/storekit/storecore/entity"
	storeerrors "github.com/storekit/storecore/pkg/errors"
	"github.com/storekit/storecore/storage"
	"github.com/storekit/storecore/validate"
)

// CustomerService orchestrates validation, the customer store and the cache
// for every customer operation, and owns the customer cache invalidation.
type CustomerService struct {
	store     CustomerStore
	cache     cache.Service
	keys      cache.Fingerprinter
	validator *validate.Validator
	log       zerolog.Logger
}

// NewCustomerService wires a CustomerService.
func NewCustomerService(store CustomerStore, cacheService cache.Service, keys cache.Fingerprinter, validator *validate.Validator, log zerolog.Logger) *CustomerService {
	return &CustomerService{
		store:     store,
		cache:     cacheService,
		keys:      keys,
		validator: validator,
		log:       log.With().Str("service", "customer").Logger(),
	}
}

// GetByID returns the customer with the given id, read through the
// customer-by-id region.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	if err := s.validator.ValidateID("id", id); err != nil {
		return nil, err
	}

	fingerprint := s.keys.Fingerprint(id)
	if customer, ok := cache.Lookup[*entity.Customer](ctx, s.cache, cache.RegionCustomerByID, fingerprint); ok {
		return customer, nil
	}

	customer, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to retrieve customer")
		return nil, storeerrors.OperationFailure("failed to retrieve customer", err)
	}
	if customer == nil {
		s.log.Warn().Int64("id", id).Msg("customer not found")
		return nil, storeerrors.NotFound("customer", id)
	}

	s.cache.Put(ctx, cache.RegionCustomerByID, fingerprint, customer)
	return customer, nil
}

// List returns one page of customers, read through the customer-page region.
func (s *CustomerService) List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Customer], error) {
	s.log.Debug().Int("page", req.Page).Int("size", req.Size).
		Str("sort_by", req.SortBy).Str("sort_order", req.SortOrder).
		Msg("listing customers")

	fingerprint := pageFingerprint(s.keys, req)
	if page, ok := cache.Lookup[storage.Page[*entity.Customer]](ctx, s.cache, cache.RegionCustomerPage, fingerprint); ok {
		return page, nil
	}

	page, err := s.store.List(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to retrieve customers")
		return storage.Page[*entity.Customer]{}, storeerrors.OperationFailure("failed to retrieve customers", err)
	}

	s.cache.Put(ctx, cache.RegionCustomerPage, fingerprint, page)
	return page, nil
}

// Search returns one page of customers whose name contains query, read
// through the customer-search-page region. A blank query returns everything.
func (s *CustomerService) Search(ctx context.Context, query string, req storage.PageRequest) (storage.Page[*entity.Customer], error) {
	if err := s.validator.ValidateSearchQuery(query); err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("invalid customer search query")
		return storage.Page[*entity.Customer]{}, err
	}

	fingerprint := searchFingerprint(s.keys, query, req)
	if page, ok := cache.Lookup[storage.Page[*entity.Customer]](ctx, s.cache, cache.RegionCustomerSearchPage, fingerprint); ok {
		return page, nil
	}

	page, err := s.store.SearchByName(ctx, query, req)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to search customers")
		return storage.Page[*entity.Customer]{}, storeerrors.OperationFailure("failed to search customers", err)
	}

	s.cache.Put(ctx, cache.RegionCustomerSearchPage, fingerprint, page)
	return page, nil
}

// Create validates and sanitizes the name, persists the customer and evicts
// every customer region.
func (s *CustomerService) Create(ctx context.Context, name string) (*entity.Customer, error) {
	if err := s.validator.ValidateName(name); err != nil {
		return nil, err
	}

	customer := &entity.Customer{Name: s.validator.SanitizeName(name)}
	created, err := s.store.Save(ctx, customer)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create customer")
		return nil, storeerrors.OperationFailure("failed to create customer", err)
	}

	if err := evictRegions(ctx, s.cache, customerRegions); err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", created.ID).Msg("created customer")
	return created, nil
}

// Update replaces the customer's name, preserving identity, and evicts
// every customer region. Fails with NotFound when the id does not exist.
func (s *CustomerService) Update(ctx context.Context, id int64, name string) (*entity.Customer, error) {
	if err := s.validator.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to update customer")
		return nil, storeerrors.OperationFailure("failed to update customer", err)
	}
	if existing == nil {
		s.log.Warn().Int64("id", id).Msg("customer not found for update")
		return nil, storeerrors.NotFound("customer", id)
	}

	existing.Name = s.validator.SanitizeName(name)
	updated, err := s.store.Save(ctx, existing)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to update customer")
		return nil, storeerrors.OperationFailure("failed to update customer", err)
	}

	if err := evictRegions(ctx, s.cache, customerRegions); err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", id).Msg("updated customer")
	return updated, nil
}

// Delete removes the customer and evicts every customer region. Fails with
// NotFound when the id does not exist.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.validator.ValidateID("id", id); err != nil {
		return err
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete customer")
		return storeerrors.OperationFailure("failed to delete customer", err)
	}
	if !exists {
		s.log.Warn().Int64("id", id).Msg("customer not found for deletion")
		return storeerrors.NotFound("customer", id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete customer")
		return storeerrors.OperationFailure("failed to delete customer", err)
	}

	if err := evictRegions(ctx, s.cache, customerRegions); err != nil {
		return err
	}

	s.log.Info().Int64("id", id).Msg("deleted customer")
	return nil
}
