// Package service implements the entity services for customers, products
// and orders. Each service is a single synchronous unit of work per call:
// validate and sanitize the input, then either read through the cache or
// mutate the store and invalidate.
//
// # Read path
//
//  1. Validate the input (id, search query).
//  2. Probe the region for the operation, keyed by the parameter
//     fingerprint.
//  3. On a miss, query the store, fail NotFound for absent ids, populate
//     the cache and return.
//
// # Write path
//
//  1. Validate required fields and sanitize.
//  2. Verify existence where the operation demands it (update, delete,
//     order→customer), failing NotFound before any mutation.
//  3. Persist via the store.
//  4. Only after the write commits, evict every cache region belonging to
//     the entity type. A failed write never evicts valid cached data.
//
// Order writes evict only the order regions: customer and product fields
// are untouched by an order, and the product with/without-orders views are
// recomputed lazily within their TTL (see OrderOptions.EvictProductViews
// for the stricter policy).
//
// Validation-class and NotFound failures propagate unmodified; store and
// cache failures are wrapped as OperationFailure. Nothing is retried.
package service
