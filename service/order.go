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

// CreateOrderRequest carries the already-bound inputs for order creation.
// CustomerID is nullable so a missing reference is distinguishable from an
// invalid one.
type CreateOrderRequest struct {
	Description string
	CustomerID  *int64
	ProductIDs  []int64
}

// OrderOptions tune order creation policy.
type OrderOptions struct {
	// StrictProducts fails order creation with NotFound when a requested
	// product id does not exist, instead of silently dropping it.
	StrictProducts bool

	// EvictProductViews also evicts the product with/without-orders regions
	// after an order write. Off by default: those views are recomputed
	// lazily on the next miss, bounded by their TTL.
	EvictProductViews bool
}

// OrderService orchestrates order reads and creation. Orders have no update
// or delete operation in this core.
type OrderService struct {
	store     OrderStore
	customers CustomerStore
	products  ProductStore
	cache     cache.Service
	keys      cache.Fingerprinter
	validator *validate.Validator
	opts      OrderOptions
	log       zerolog.Logger
}

// NewOrderService wires an OrderService.
func NewOrderService(store OrderStore, customers CustomerStore, products ProductStore, cacheService cache.Service, keys cache.Fingerprinter, validator *validate.Validator, opts OrderOptions, log zerolog.Logger) *OrderService {
	return &OrderService{
		store:     store,
		customers: customers,
		products:  products,
		cache:     cacheService,
		keys:      keys,
		validator: validator,
		opts:      opts,
		log:       log.With().Str("service", "order").Logger(),
	}
}

// GetByID returns the order with the given id, with its customer and
// products loaded, read through the order-by-id region.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	if err := s.validator.ValidateID("id", id); err != nil {
		return nil, err
	}

	fingerprint := s.keys.Fingerprint(id)
	if order, ok := cache.Lookup[*entity.Order](ctx, s.cache, cache.RegionOrderByID, fingerprint); ok {
		return order, nil
	}

	order, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("failed to retrieve order")
		return nil, storeerrors.OperationFailure("failed to retrieve order", err)
	}
	if order == nil {
		s.log.Warn().Int64("id", id).Msg("order not found")
		return nil, storeerrors.NotFound("order", id)
	}

	s.cache.Put(ctx, cache.RegionOrderByID, fingerprint, order)
	return order, nil
}

// List returns one page of orders, read through the order-page region.
func (s *OrderService) List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Order], error) {
	s.log.Debug().Int("page", req.Page).Int("size", req.Size).
		Str("sort_by", req.SortBy).Str("sort_order", req.SortOrder).
		Msg("listing orders")

	fingerprint := pageFingerprint(s.keys, req)
	if page, ok := cache.Lookup[storage.Page[*entity.Order]](ctx, s.cache, cache.RegionOrderPage, fingerprint); ok {
		return page, nil
	}

	page, err := s.store.List(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to retrieve orders")
		return storage.Page[*entity.Order]{}, storeerrors.OperationFailure("failed to retrieve orders", err)
	}

	s.cache.Put(ctx, cache.RegionOrderPage, fingerprint, page)
	return page, nil
}

// ListAll returns every order, cached in the order-by-id region under the
// shared list-all fingerprint.
func (s *OrderService) ListAll(ctx context.Context) ([]*entity.Order, error) {
	if orders, ok := cache.Lookup[[]*entity.Order](ctx, s.cache, cache.RegionOrderByID, allFingerprint); ok {
		return orders, nil
	}

	orders, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to retrieve orders")
		return nil, storeerrors.OperationFailure("failed to retrieve orders", err)
	}

	s.cache.Put(ctx, cache.RegionOrderByID, allFingerprint, orders)
	return orders, nil
}

// Create persists a new order. The customer must exist; requested product
// ids that do not exist are dropped from the product set (or rejected with
// NotFound under StrictProducts). Nothing is persisted when the customer
// reference fails. Order regions are evicted after the write; customer and
// product fields are untouched, so their regions are left alone.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*entity.Order, error) {
	if err := s.validator.ValidateOptionalID("customerId", req.CustomerID); err != nil {
		return nil, err
	}

	customer, err := s.customers.Get(ctx, *req.CustomerID)
	if err != nil {
		s.log.Error().Err(err).Int64("customer_id", *req.CustomerID).Msg("failed to resolve order customer")
		return nil, storeerrors.OperationFailure("failed to create order", err)
	}
	if customer == nil {
		s.log.Warn().Int64("customer_id", *req.CustomerID).Msg("order customer not found")
		return nil, storeerrors.NotFound("customer", *req.CustomerID)
	}

	products, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		Description: req.Description,
		CustomerID:  customer.ID,
		Customer:    customer,
		Products:    products,
	}

	created, err := s.store.Save(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, storeerrors.OperationFailure("failed to create order", err)
	}

	if err := s.evictAfterWrite(ctx); err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", created.ID).Int64("customer_id", customer.ID).
		Int("products", len(products)).Msg("created order")
	return created, nil
}

// resolveProducts looks up the requested product ids as a set. Missing ids
// are dropped unless StrictProducts is on.
func (s *OrderService) resolveProducts(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	products, err := s.products.GetByIDs(ctx, unique)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to resolve order products")
		return nil, storeerrors.OperationFailure("failed to create order", err)
	}

	if s.opts.StrictProducts && len(products) != len(unique) {
		found := make(map[int64]bool, len(products))
		for _, product := range products {
			found[product.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				s.log.Warn().Int64("product_id", id).Msg("order product not found")
				return nil, storeerrors.NotFound("product", id)
			}
		}
	}

	if dropped := len(unique) - len(products); dropped > 0 {
		s.log.Debug().Int("dropped", dropped).Msg("dropped unknown product ids from order")
	}
	return products, nil
}

func (s *OrderService) evictAfterWrite(ctx context.Context) error {
	if err := evictRegions(ctx, s.cache, orderRegions); err != nil {
		return err
	}
	if s.opts.EvictProductViews {
		return evictRegions(ctx, s.cache, productViewRegions)
	}
	return nil
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
