package cache

import "context"

// Region names a partition of the cache holding every cached result for one
// (entity type, operation shape) pair. Regions are evicted as a unit.
type Region string

// Fingerprinter builds a deterministic key from an operation's parameter set.
// Two calls with different parameters must never produce the same fingerprint.
type Fingerprinter interface {
	Fingerprint(args ...any) string
}

// Service is the process-wide keyed store the entity services read through.
// Implementations must be safe for concurrent use; nil values are never
// stored, so a miss stays a miss.
type Service interface {
	// Get returns the entry stored under (region, fingerprint), if any.
	Get(ctx context.Context, region Region, fingerprint string) (any, bool)

	// Put stores value under (region, fingerprint). Nil values are ignored.
	Put(ctx context.Context, region Region, fingerprint string, value any)

	// EvictRegion removes every entry in region, regardless of fingerprint.
	EvictRegion(ctx context.Context, region Region) error
}

// Lookup is a type-safe wrapper around Service.Get. A stored value of the
// wrong type counts as a miss rather than a panic.
func Lookup[T any](ctx context.Context, service Service, region Region, fingerprint string) (T, bool) {
	var zero T
	raw, ok := service.Get(ctx, region, fingerprint)
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}
