// Package config loads the application configuration from environment
// variables with sensible defaults. Call LoadDotenv before LoadConfig when
// a .env file should be honored.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotenv loads the given .env files (or ./.env when none are named)
// into the process environment. A missing file is not an error.
func LoadDotenv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// Config represents the application configuration.
type Config struct {
	// Database configuration
	DatabaseDSN string

	// Cache sizing
	CacheCapacity      int
	CacheShards        int
	EvictionPercentage int

	// Per-entity TTL overrides for the by-id cache regions; paged and
	// search regions share PagedTTL.
	CustomerTTL time.Duration
	ProductTTL  time.Duration
	OrderTTL    time.Duration
	PagedTTL    time.Duration

	// StrictOrderProducts turns unknown product ids in an order creation
	// request into a NotFound failure instead of silently dropping them.
	StrictOrderProducts bool

	// EvictProductViewsOnOrderWrite also evicts the product with/without
	// orders regions after an order write, closing the staleness window at
	// the cost of extra misses.
	EvictProductViewsOnOrderWrite bool

	// Environment
	Environment string
	LogLevel    string
}

// LoadConfig loads the configuration from environment variables with defaults.
func LoadConfig() *Config {
	capacity, _ := strconv.Atoi(getEnv("CACHE_CAPACITY", "10000"))
	shards, _ := strconv.Atoi(getEnv("CACHE_SHARDS", "256"))
	evictionPct, _ := strconv.Atoi(getEnv("CACHE_EVICTION_PERCENTAGE", "10"))

	return &Config{
		DatabaseDSN:                   getEnv("DATABASE_DSN", "file:store.db?_fk=1"),
		CacheCapacity:                 capacity,
		CacheShards:                   shards,
		EvictionPercentage:            evictionPct,
		CustomerTTL:                   getDurationEnv("CUSTOMER_CACHE_TTL", 5*time.Minute),
		ProductTTL:                    getDurationEnv("PRODUCT_CACHE_TTL", 15*time.Minute),
		OrderTTL:                      getDurationEnv("ORDER_CACHE_TTL", 8*time.Minute),
		PagedTTL:                      getDurationEnv("PAGED_CACHE_TTL", 3*time.Minute),
		StrictOrderProducts:           getBoolEnv("STRICT_ORDER_PRODUCTS", false),
		EvictProductViewsOnOrderWrite: getBoolEnv("EVICT_PRODUCT_VIEWS_ON_ORDER_WRITE", false),
		Environment:                   getEnv("STORE_ENVIRONMENT", "development"),
		LogLevel:                      getEnv("LOG_LEVEL", ""),
	}
}

// Validate rejects configurations the cache or store cannot run with.
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.CacheCapacity)
	}
	if c.CacheShards <= 0 {
		return fmt.Errorf("CACHE_SHARDS must be positive, got %d", c.CacheShards)
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return fmt.Errorf("CACHE_EVICTION_PERCENTAGE must be between 1 and 100, got %d", c.EvictionPercentage)
	}
	for name, ttl := range map[string]time.Duration{
		"CUSTOMER_CACHE_TTL": c.CustomerTTL,
		"PRODUCT_CACHE_TTL":  c.ProductTTL,
		"ORDER_CACHE_TTL":    c.OrderTTL,
		"PAGED_CACHE_TTL":    c.PagedTTL,
	} {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, ttl)
		}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
