package cache

import "time"

// Region names, one per (entity type, operation shape).
const (
	RegionCustomerByID       Region = "customer-by-id"
	RegionCustomerPage       Region = "customer-page"
	RegionCustomerSearchPage Region = "customer-search-page"

	RegionProductByID          Region = "product-by-id"
	RegionProductPage          Region = "product-page"
	RegionProductSearchPage    Region = "product-search-page"
	RegionProductWithOrders    Region = "product-with-orders-page"
	RegionProductWithoutOrders Region = "product-without-orders-page"

	RegionOrderByID Region = "order-by-id"
	RegionOrderPage Region = "order-page"
)

// Config holds cache sizing and per-region TTL policy.
type Config struct {
	// Capacity is the maximum number of entries per region.
	Capacity int

	// NumShards controls shard count for concurrent access within a region.
	NumShards int

	// DefaultTTL applies to any region without an explicit TTL.
	DefaultTTL time.Duration

	// EvictionPercentage is the share of entries evicted when a region
	// reaches capacity, between 1 and 100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are scanned for.
	// Zero uses the backend default.
	EvictionInterval time.Duration

	// RegionTTLs maps each region to its time-to-live. Entity by-id regions
	// track how stable the entity is; paged and search views aggregate many
	// records, go stale faster, and get a shorter TTL.
	RegionTTLs map[Region]time.Duration
}

// DefaultConfig returns the region policy used in production: by-id TTLs of
// 5m (customers), 15m (products) and 8m (orders), 3m for every paged view,
// 10m for anything unregistered.
func DefaultConfig() Config {
	const pagedTTL = 3 * time.Minute

	return Config{
		Capacity:           10000,
		NumShards:          256,
		DefaultTTL:         10 * time.Minute,
		EvictionPercentage: 10,
		RegionTTLs: map[Region]time.Duration{
			RegionCustomerByID:       5 * time.Minute,
			RegionCustomerPage:       pagedTTL,
			RegionCustomerSearchPage: pagedTTL,

			RegionProductByID:          15 * time.Minute,
			RegionProductPage:          pagedTTL,
			RegionProductSearchPage:    pagedTTL,
			RegionProductWithOrders:    pagedTTL,
			RegionProductWithoutOrders: pagedTTL,

			RegionOrderByID: 8 * time.Minute,
			RegionOrderPage: pagedTTL,
		},
	}
}

// TTL returns the time-to-live for region.
func (c Config) TTL(region Region) time.Duration {
	if ttl, ok := c.RegionTTLs[region]; ok {
		return ttl
	}
	return c.DefaultTTL
}
