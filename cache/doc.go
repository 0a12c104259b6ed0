// Package cache defines the caching contracts the entity services read
// through: regions, fingerprints and the Service interface.
//
// # Regions and fingerprints
//
// The cache is partitioned into named regions, one per (entity type,
// operation shape) pair, e.g. "customer-by-id" or "product-search-page".
// Within a region, entries are addressed by a fingerprint derived from the
// operation's full parameter set. Writes never chase individual entries:
// after a successful mutation the owning service evicts every region
// belonging to that entity type, because any cached page or search result
// may now be stale.
//
// # Fingerprint construction
//
//	fp := cache.NewFingerprinter()
//	key := fp.Fingerprint(page, size, sortBy, sortOrder)
//
// Every parameter that affects the result must be included so two calls
// with different parameters never collide on the same slot. The default
// implementation serializes basic types directly, recurses into pointers,
// slices and structs, sorts map pairs for determinism, and falls back to
// JSON for anything else.
//
// # TTL policy
//
// Each region carries its own TTL (see Config): by-id regions track entity
// stability, paged and search regions use a shorter TTL because they
// aggregate many records. TTL is also the bound on the accepted staleness
// window: a read racing a write's eviction may repopulate a region with
// pre-write data, which expires with the entry.
//
// Nil values are never stored; a miss stays a miss.
//
// The sturdyc-backed implementation lives in internal/cacheinfra.
package cache
