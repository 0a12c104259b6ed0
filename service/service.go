package service

import (
	"context"

	"github.com/storekit/storecore/cache"
	"github.com/storekit/storecore/entity"
	storeerrors "github.com/storekit/storecore/pkg/errors"
	"github.com/storekit/storecore/storage"
)

// allFingerprint addresses the unpaged list-all entry within a by-id region.
const allFingerprint = "all"

// CustomerStore is what the customer service needs from persistence.
type CustomerStore interface {
	Get(ctx context.Context, id int64) (*entity.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Customer], error)
	SearchByName(ctx context.Context, query string, req storage.PageRequest) (storage.Page[*entity.Customer], error)
}

// ProductStore is what the product and order services need from persistence.
type ProductStore interface {
	Get(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	SearchByDescription(ctx context.Context, query string, req storage.PageRequest) (storage.Page[*entity.Product], error)
	SearchAllByDescription(ctx context.Context, query string) ([]*entity.Product, error)
	WithOrders(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error)
	WithoutOrders(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error)
}

// OrderStore is what the order service needs from persistence.
type OrderStore interface {
	Get(ctx context.Context, id int64) (*entity.Order, error)
	Save(ctx context.Context, order *entity.Order) (*entity.Order, error)
	List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Order], error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
}

// Region sets evicted after a write to the corresponding entity type.
// Evicting broadly is intentional: any cached page or search result may be
// stale once a single record of the type changes.
var (
	customerRegions = []cache.Region{
		cache.RegionCustomerByID,
		cache.RegionCustomerPage,
		cache.RegionCustomerSearchPage,
	}
	productRegions = []cache.Region{
		cache.RegionProductByID,
		cache.RegionProductPage,
		cache.RegionProductSearchPage,
		cache.RegionProductWithOrders,
		cache.RegionProductWithoutOrders,
	}
	orderRegions = []cache.Region{
		cache.RegionOrderByID,
		cache.RegionOrderPage,
	}
	productViewRegions = []cache.Region{
		cache.RegionProductWithOrders,
		cache.RegionProductWithoutOrders,
	}
)

// evictRegions clears every given region. Called only after the store write
// committed so a failed write never evicts valid cached data.
func evictRegions(ctx context.Context, cacheService cache.Service, regions []cache.Region) error {
	for _, region := range regions {
		if err := cacheService.EvictRegion(ctx, region); err != nil {
			return storeerrors.OperationFailure("failed to evict cache region "+string(region), err)
		}
	}
	return nil
}

// pageFingerprint builds the cache key for a paged view from every
// parameter that affects the result.
func pageFingerprint(keys cache.Fingerprinter, req storage.PageRequest) string {
	return keys.Fingerprint(req.Page, req.Size, req.SortBy, req.SortOrder)
}

// searchFingerprint additionally folds in the search string.
func searchFingerprint(keys cache.Fingerprinter, query string, req storage.PageRequest) string {
	return keys.Fingerprint(query, req.Page, req.Size, req.SortBy, req.SortOrder)
}
