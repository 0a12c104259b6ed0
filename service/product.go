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

// ProductService orchestrates validation, the product store and the cache
// for every product operation, including the order-derived views.
type ProductService struct {
	store     ProductStore
	cache     cache.Service
	keys      cache.Fingerprinter
	validator *validate.Validator
	log       zerolog.Logger
}

// NewProductService wires a ProductService.
func NewProductService(store ProductStore, cacheService cache.Service, keys cache.Fingerprinter, validator *validate.Validator, log zerolog.Logger) *ProductService {
	return &ProductService{
		store:     store,
		cache:     cacheService,
		keys:      keys,
		validator: validator,
		log:       log.With().Str("service", "product").Logger(),
	}
}

// GetByID returns the product with the given id, read through the
// product-by-id region.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if err := s.validator.ValidateID("id", id); err != nil {
		return nil, err
	}

	fingerprint := s.keys.Fingerprint(id)
	if product, ok := cache.Lookup[*entity.Product](ctx, s.cache, cache.RegionProductByID, fingerprint); ok {
		return product, nil
	}

	product, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to retrieve product")
		return nil, storeerrors.OperationFailure("failed to retrieve product", err)
	}
	if product == nil {
		s.log.Warn().Int64("id", id).Msg("product not found")
		return nil, storeerrors.NotFound("product", id)
	}

	s.cache.Put(ctx, cache.RegionProductByID, fingerprint, product)
	return product, nil
}

// List returns one page of products, read through the product-page region.
func (s *ProductService) List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	s.log.Debug().Int("page", req.Page).Int("size", req.Size).
		Str("sort_by", req.SortBy).Str("sort_order", req.SortOrder).
		Msg("listing products")

	fingerprint := pageFingerprint(s.keys, req)
	if page, ok := cache.Lookup[storage.Page[*entity.Product]](ctx, s.cache, cache.RegionProductPage, fingerprint); ok {
		return page, nil
	}

	page, err := s.store.List(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to retrieve products")
		return storage.Page[*entity.Product]{}, storeerrors.OperationFailure("failed to retrieve products", err)
	}

	s.cache.Put(ctx, cache.RegionProductPage, fingerprint, page)
	return page, nil
}

// ListAll returns every product, cached in the product-by-id region under
// the shared list-all fingerprint.
func (s *ProductService) ListAll(ctx context.Context) ([]*entity.Product, error) {
	if products, ok := cache.Lookup[[]*entity.Product](ctx, s.cache, cache.RegionProductByID, allFingerprint); ok {
		return products, nil
	}

	products, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to retrieve products")
		return nil, storeerrors.OperationFailure("failed to retrieve products", err)
	}

	s.cache.Put(ctx, cache.RegionProductByID, allFingerprint, products)
	return products, nil
}

// Search returns one page of products whose description contains query,
// read through the product-search-page region. A blank query returns
// everything.
func (s *ProductService) Search(ctx context.Context, query string, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	if err := s.validator.ValidateSearchQuery(query); err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("invalid product search query")
		return storage.Page[*entity.Product]{}, err
	}

	fingerprint := searchFingerprint(s.keys, query, req)
	if page, ok := cache.Lookup[storage.Page[*entity.Product]](ctx, s.cache, cache.RegionProductSearchPage, fingerprint); ok {
		return page, nil
	}

	page, err := s.store.SearchByDescription(ctx, query, req)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to search products")
		return storage.Page[*entity.Product]{}, storeerrors.OperationFailure("failed to search products", err)
	}

	s.cache.Put(ctx, cache.RegionProductSearchPage, fingerprint, page)
	return page, nil
}

// SearchAll is the unpaged form of Search. Not cached.
func (s *ProductService) SearchAll(ctx context.Context, query string) ([]*entity.Product, error) {
	if err := s.validator.ValidateSearchQuery(query); err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("invalid product search query")
		return nil, err
	}

	products, err := s.store.SearchAllByDescription(ctx, query)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, storeerrors.OperationFailure("failed to search products", err)
	}
	return products, nil
}

// WithOrders returns one page of distinct products that appear in at least
// one order, read through its own region.
func (s *ProductService) WithOrders(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	fingerprint := pageFingerprint(s.keys, req)
	if page, ok := cache.Lookup[storage.Page[*entity.Product]](ctx, s.cache, cache.RegionProductWithOrders, fingerprint); ok {
		return page, nil
	}

	page, err := s.store.WithOrders(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to retrieve products with orders")
		return storage.Page[*entity.Product]{}, storeerrors.OperationFailure("failed to retrieve products with orders", err)
	}

	s.cache.Put(ctx, cache.RegionProductWithOrders, fingerprint, page)
	return page, nil
}

// WithoutOrders returns one page of products that appear in no order, read
// through its own region.
func (s *ProductService) WithoutOrders(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	fingerprint := pageFingerprint(s.keys, req)
	if page, ok := cache.Lookup[storage.Page[*entity.Product]](ctx, s.cache, cache.RegionProductWithoutOrders, fingerprint); ok {
		return page, nil
	}

	page, err := s.store.WithoutOrders(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to retrieve products without orders")
		return storage.Page[*entity.Product]{}, storeerrors.OperationFailure("failed to retrieve products without orders", err)
	}

	s.cache.Put(ctx, cache.RegionProductWithoutOrders, fingerprint, page)
	return page, nil
}

// Create validates and sanitizes the description, persists the product and
// evicts every product region.
func (s *ProductService) Create(ctx context.Context, description string) (*entity.Product, error) {
	if err := s.validator.ValidateDescription(description); err != nil {
		return nil, err
	}

	product := &entity.Product{Description: s.validator.SanitizeDescription(description)}
	created, err := s.store.Save(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, storeerrors.OperationFailure("failed to create product", err)
	}

	if err := evictRegions(ctx, s.cache, productRegions); err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", created.ID).Msg("created product")
	return created, nil
}

// Update replaces the product's description, preserving identity, and
// evicts every product region. Fails with NotFound when the id does not
// exist.
func (s *ProductService) Update(ctx context.Context, id int64, description string) (*entity.Product, error) {
	if err := s.validator.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDescription(description); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to update product")
		return nil, storeerrors.OperationFailure("failed to update product", err)
	}
	if existing == nil {
		s.log.Warn().Int64("id", id).Msg("product not found for update")
		return nil, storeerrors.NotFound("product", id)
	}

	existing.Description = s.validator.SanitizeDescription(description)
	updated, err := s.store.Save(ctx, existing)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to update product")
		return nil, storeerrors.OperationFailure("failed to update product", err)
	}

	if err := evictRegions(ctx, s.cache, productRegions); err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", id).Msg("updated product")
	return updated, nil
}

// Delete removes the product and evicts every product region. Fails with
// NotFound when the id does not exist.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.validator.ValidateID("id", id); err != nil {
		return err
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete product")
		return storeerrors.OperationFailure("failed to delete product", err)
	}
	if !exists {
		s.log.Warn().Int64("id", id).Msg("product not found for deletion")
		return storeerrors.NotFound("product", id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete product")
		return storeerrors.OperationFailure("failed to delete product", err)
	}

	if err := evictRegions(ctx, s.cache, productRegions); err != nil {
		return err
	}

	s.log.Info().Int64("id", id).Msg("deleted product")
	return nil
}
