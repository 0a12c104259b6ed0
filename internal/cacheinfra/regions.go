// Package cacheinfra implements the cache.Service contract on top of
// viccon/sturdyc. Each region gets a dedicated sturdyc client so it can
// carry its own TTL and be evicted as a unit.
package cacheinfra

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/viccon/sturdyc"

	"github.com/storekit/storecore/cache"
)

// ConfigError reports an invalid cache configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "cache config error in field " + e.Field + ": " + e.Message
}

// Validate checks the sizing and TTL values in cfg.
func Validate(cfg cache.Config) error {
	if cfg.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if cfg.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if cfg.DefaultTTL <= 0 {
		return &ConfigError{Field: "DefaultTTL", Message: "must be greater than 0"}
	}
	if cfg.EvictionPercentage < 1 || cfg.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	for region, ttl := range cfg.RegionTTLs {
		if ttl <= 0 {
			return &ConfigError{Field: "RegionTTLs[" + string(region) + "]", Message: "must be greater than 0"}
		}
	}
	return nil
}

// RegionStore is the sturdyc-backed cache.Service implementation. Regions
// are created lazily; a region without a configured TTL gets DefaultTTL.
type RegionStore struct {
	cfg     cache.Config
	regions *xsync.MapOf[cache.Region, *sturdyc.Client[any]]
}

var _ cache.Service = (*RegionStore)(nil)

// NewRegionStore validates cfg and returns an empty RegionStore.
func NewRegionStore(cfg cache.Config) (*RegionStore, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &RegionStore{
		cfg:     cfg,
		regions: xsync.NewMapOf[cache.Region, *sturdyc.Client[any]](),
	}, nil
}

func (s *RegionStore) client(region cache.Region) *sturdyc.Client[any] {
	client, _ := s.regions.LoadOrCompute(region, func() *sturdyc.Client[any] {
		return s.newClient(s.cfg.TTL(region))
	})
	return client
}

func (s *RegionStore) newClient(ttl time.Duration) *sturdyc.Client[any] {
	var opts []sturdyc.Option
	if s.cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(s.cfg.EvictionInterval))
	}
	return sturdyc.New[any](s.cfg.Capacity, s.cfg.NumShards, ttl, s.cfg.EvictionPercentage, opts...)
}

// Get returns the entry stored under (region, fingerprint), if present and
// not expired.
func (s *RegionStore) Get(ctx context.Context, region cache.Region, fingerprint string) (any, bool) {
	return s.client(region).Get(fingerprint)
}

// Put stores value under (region, fingerprint). Nil values are never
// cached so a missing record stays a miss.
func (s *RegionStore) Put(ctx context.Context, region cache.Region, fingerprint string, value any) {
	if value == nil {
		return
	}
	s.client(region).Set(fingerprint, value)
}

// EvictRegion removes every entry in region, regardless of fingerprint.
func (s *RegionStore) EvictRegion(ctx context.Context, region cache.Region) error {
	client, ok := s.regions.Load(region)
	if !ok {
		return nil
	}
	for _, key := range client.ScanKeys() {
		client.Delete(key)
	}
	return nil
}

// Size reports the number of live entries in region.
func (s *RegionStore) Size(region cache.Region) int {
	client, ok := s.regions.Load(region)
	if !ok {
		return 0
	}
	return client.Size()
}
