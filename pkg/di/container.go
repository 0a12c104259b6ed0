// Package di wires the application together: configuration, logger,
// database, stores, cache regions and the entity services. It manages
// singleton instances so every service shares one cache and one database
// pool.
package di

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/storekit/storecore/cache"
	"github.com/storekit/storecore/config"
	"github.com/storekit/storecore/internal/cacheinfra"
	"github.com/storekit/storecore/logger"
	"github.com/storekit/storecore/service"
	"github.com/storekit/storecore/storage"
	"github.com/storekit/storecore/validate"
)

// Container holds the singleton instances behind the entity services.
type Container struct {
	cfg *config.Config
	log zerolog.Logger

	db    *bun.DB
	cache *cacheinfra.RegionStore
	keys  cache.Fingerprinter

	customers *service.CustomerService
	products  *service.ProductService
	orders    *service.OrderService
}

// NewContainer builds the full object graph from cfg. The database is
// opened but the schema is not touched; call InitSchema when the tables
// may not exist yet.
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	sqldb, err := sql.Open("sqlite3", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	storage.RegisterModels(db)

	regionStore, err := cacheinfra.NewRegionStore(cacheConfig(cfg))
	if err != nil {
		db.Close()
		return nil, err
	}

	keys := cache.NewFingerprinter()
	validator := validate.New()

	customerStore := storage.NewCustomerStore(db)
	productStore := storage.NewProductStore(db)
	orderStore := storage.NewOrderStore(db)

	orderOpts := service.OrderOptions{
		StrictProducts:    cfg.StrictOrderProducts,
		EvictProductViews: cfg.EvictProductViewsOnOrderWrite,
	}

	return &Container{
		cfg:       cfg,
		log:       log,
		db:        db,
		cache:     regionStore,
		keys:      keys,
		customers: service.NewCustomerService(customerStore, regionStore, keys, validator, log),
		products:  service.NewProductService(productStore, regionStore, keys, validator, log),
		orders:    service.NewOrderService(orderStore, customerStore, productStore, regionStore, keys, validator, orderOpts, log),
	}, nil
}

// NewContainerWithDefaults builds a container from the environment-derived
// configuration, honoring a .env file when one is present. Convenience
// constructor for typical use.
func NewContainerWithDefaults() (*Container, error) {
	config.LoadDotenv()
	return NewContainer(config.LoadConfig())
}

// cacheConfig maps the application configuration onto the cache region
// configuration, spreading the per-entity TTLs over their regions.
func cacheConfig(cfg *config.Config) cache.Config {
	regionCfg := cache.DefaultConfig()
	regionCfg.Capacity = cfg.CacheCapacity
	regionCfg.NumShards = cfg.CacheShards
	regionCfg.EvictionPercentage = cfg.EvictionPercentage
	regionCfg.RegionTTLs = map[cache.Region]time.Duration{
		cache.RegionCustomerByID:         cfg.CustomerTTL,
		cache.RegionProductByID:          cfg.ProductTTL,
		cache.RegionOrderByID:            cfg.OrderTTL,
		cache.RegionCustomerPage:         cfg.PagedTTL,
		cache.RegionCustomerSearchPage:   cfg.PagedTTL,
		cache.RegionProductPage:          cfg.PagedTTL,
		cache.RegionProductSearchPage:    cfg.PagedTTL,
		cache.RegionProductWithOrders:    cfg.PagedTTL,
		cache.RegionProductWithoutOrders: cfg.PagedTTL,
		cache.RegionOrderPage:            cfg.PagedTTL,
	}
	return regionCfg
}

// InitSchema creates the tables when they do not exist yet.
func (c *Container) InitSchema(ctx context.Context) error {
	return storage.CreateSchema(ctx, c.db)
}

// Customers returns the singleton customer service.
func (c *Container) Customers() *service.CustomerService { return c.customers }

// Products returns the singleton product service.
func (c *Container) Products() *service.ProductService { return c.products }

// Orders returns the singleton order service.
func (c *Container) Orders() *service.OrderService { return c.orders }

// DB exposes the underlying database handle for migrations and tests.
func (c *Container) DB() *bun.DB { return c.db }

// Cache exposes the region store for monitoring and tests.
func (c *Container) Cache() *cacheinfra.RegionStore { return c.cache }

// Logger returns the root logger the services derive theirs from.
func (c *Container) Logger() zerolog.Logger { return c.log }

// Config returns the configuration the container was built from.
func (c *Container) Config() *config.Config { return c.cfg }

// Close releases the database pool.
func (c *Container) Close() error {
	return c.db.Close()
}
