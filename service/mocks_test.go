package service

import (
	"context"
	"sync"

	"github.com/storekit/storecore/cache"
	"github.com/storekit/storecore/entity"
	"github.com/storekit/storecore/storage"
)

// fakeCache is an in-memory cache.Service that records region evictions so
// tests can assert invalidation behavior precisely.
type fakeCache struct {
	mu      sync.Mutex
	regions map[cache.Region]map[string]any
	evicted []cache.Region
}

func newFakeCache() *fakeCache {
	return &fakeCache{regions: make(map[cache.Region]map[string]any)}
}

func (c *fakeCache) Get(ctx context.Context, region cache.Region, fingerprint string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, ok := c.regions[region]
	if !ok {
		return nil, false
	}
	value, ok := entries[fingerprint]
	return value, ok
}

func (c *fakeCache) Put(ctx context.Context, region cache.Region, fingerprint string, value any) {
	if value == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, ok := c.regions[region]
	if !ok {
		entries = make(map[string]any)
		c.regions[region] = entries
	}
	entries[fingerprint] = value
}

func (c *fakeCache) EvictRegion(ctx context.Context, region cache.Region) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.regions, region)
	c.evicted = append(c.evicted, region)
	return nil
}

func (c *fakeCache) evictedRegions() []cache.Region {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cache.Region(nil), c.evicted...)
}

func (c *fakeCache) size(region cache.Region) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.regions[region])
}

// mockCustomerStore tracks method calls and returns canned results.
type mockCustomerStore struct {
	mu    sync.Mutex
	calls []string

	getResult    *entity.Customer
	getError     error
	existsResult bool
	existsError  error
	saveResult   *entity.Customer
	saveError    error
	deleteError  error
	listResult   storage.Page[*entity.Customer]
	listError    error
	searchResult storage.Page[*entity.Customer]
	searchError  error

	savedCustomer *entity.Customer
}

func (m *mockCustomerStore) recordCall(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

func (m *mockCustomerStore) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockCustomerStore) Get(ctx context.Context, id int64) (*entity.Customer, error) {
	m.recordCall("Get")
	return m.getResult, m.getError
}

func (m *mockCustomerStore) Exists(ctx context.Context, id int64) (bool, error) {
	m.recordCall("Exists")
	return m.existsResult, m.existsError
}

func (m *mockCustomerStore) Save(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	m.recordCall("Save")
	m.mu.Lock()
	m.savedCustomer = customer
	m.mu.Unlock()
	if m.saveResult != nil {
		return m.saveResult, m.saveError
	}
	return customer, m.saveError
}

func (m *mockCustomerStore) Delete(ctx context.Context, id int64) error {
	m.recordCall("Delete")
	return m.deleteError
}

func (m *mockCustomerStore) List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Customer], error) {
	m.recordCall("List")
	return m.listResult, m.listError
}

func (m *mockCustomerStore) SearchByName(ctx context.Context, query string, req storage.PageRequest) (storage.Page[*entity.Customer], error) {
	m.recordCall("SearchByName")
	return m.searchResult, m.searchError
}

// mockProductStore tracks method calls and returns canned results.
type mockProductStore struct {
	mu    sync.Mutex
	calls []string

	getResult       *entity.Product
	getError        error
	getByIDsResult  []*entity.Product
	getByIDsError   error
	existsResult    bool
	existsError     error
	saveError       error
	deleteError     error
	listResult      storage.Page[*entity.Product]
	listError       error
	listAllResult   []*entity.Product
	listAllError    error
	searchResult    storage.Page[*entity.Product]
	searchError     error
	searchAllResult []*entity.Product
	searchAllError  error
	withResult      storage.Page[*entity.Product]
	withError       error
	withoutResult   storage.Page[*entity.Product]
	withoutError    error

	requestedIDs []int64
}

func (m *mockProductStore) recordCall(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

func (m *mockProductStore) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockProductStore) Get(ctx context.Context, id int64) (*entity.Product, error) {
	m.recordCall("Get")
	return m.getResult, m.getError
}

func (m *mockProductStore) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	m.recordCall("GetByIDs")
	m.mu.Lock()
	m.requestedIDs = append([]int64(nil), ids...)
	m.mu.Unlock()
	return m.getByIDsResult, m.getByIDsError
}

func (m *mockProductStore) Exists(ctx context.Context, id int64) (bool, error) {
	m.recordCall("Exists")
	return m.existsResult, m.existsError
}

func (m *mockProductStore) Save(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	m.recordCall("Save")
	return product, m.saveError
}

func (m *mockProductStore) Delete(ctx context.Context, id int64) error {
	m.recordCall("Delete")
	return m.deleteError
}

func (m *mockProductStore) List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	m.recordCall("List")
	return m.listResult, m.listError
}

func (m *mockProductStore) ListAll(ctx context.Context) ([]*entity.Product, error) {
	m.recordCall("ListAll")
	return m.listAllResult, m.listAllError
}

func (m *mockProductStore) SearchByDescription(ctx context.Context, query string, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	m.recordCall("SearchByDescription")
	return m.searchResult, m.searchError
}

func (m *mockProductStore) SearchAllByDescription(ctx context.Context, query string) ([]*entity.Product, error) {
	m.recordCall("SearchAllByDescription")
	return m.searchAllResult, m.searchAllError
}

func (m *mockProductStore) WithOrders(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	m.recordCall("WithOrders")
	return m.withResult, m.withError
}

func (m *mockProductStore) WithoutOrders(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Product], error) {
	m.recordCall("WithoutOrders")
	return m.withoutResult, m.withoutError
}

// mockOrderStore tracks method calls and returns canned results.
type mockOrderStore struct {
	mu    sync.Mutex
	calls []string

	getResult     *entity.Order
	getError      error
	saveError     error
	listResult    storage.Page[*entity.Order]
	listError     error
	listAllResult []*entity.Order
	listAllError  error

	savedOrder *entity.Order
}

func (m *mockOrderStore) recordCall(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

func (m *mockOrderStore) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockOrderStore) Get(ctx context.Context, id int64) (*entity.Order, error) {
	m.recordCall("Get")
	return m.getResult, m.getError
}

func (m *mockOrderStore) Save(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	m.recordCall("Save")
	m.mu.Lock()
	m.savedOrder = order
	m.mu.Unlock()
	if m.saveError != nil {
		return nil, m.saveError
	}
	order.ID = 100
	return order, nil
}

func (m *mockOrderStore) List(ctx context.Context, req storage.PageRequest) (storage.Page[*entity.Order], error) {
	m.recordCall("List")
	return m.listResult, m.listError
}

func (m *mockOrderStore) ListAll(ctx context.Context) ([]*entity.Order, error) {
	m.recordCall("ListAll")
	return m.listAllResult, m.listAllError
}

func containsRegion(regions []cache.Region, region cache.Region) bool {
	for _, r := range regions {
		if r == region {
			return true
		}
	}
	return false
}
