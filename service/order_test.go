package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storekit/storecore/cache"
	"github.com/storekit/storecore/entity"
	storeerrors "github.com/storekit/storecore/pkg/errors"
	"github.com/storekit/storecore/storage"
	"github.com/storekit/storecore/validate"
)

func newOrderService(orders *mockOrderStore, customers *mockCustomerStore, products *mockProductStore, fake *fakeCache, opts OrderOptions) *OrderService {
	return NewOrderService(orders, customers, products, fake, cache.NewFingerprinter(), validate.New(), opts, zerolog.Nop())
}

func int64ptr(v int64) *int64 { return &v }

func TestOrderService_GetByID_ReadThrough(t *testing.T) {
	orders := &mockOrderStore{getResult: &entity.Order{ID: 5, Description: "Office Setup"}}
	svc := newOrderService(orders, &mockCustomerStore{}, &mockProductStore{}, newFakeCache(), OrderOptions{})
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, 5); err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, 5); err != nil {
		t.Fatalf("GetByID() second call failed: %v", err)
	}
	if calls := orders.getCalls(); len(calls) != 1 {
		t.Errorf("expected 1 store call, got %v", calls)
	}
}

func TestOrderService_Create_MissingCustomerID(t *testing.T) {
	orders := &mockOrderStore{}
	svc := newOrderService(orders, &mockCustomerStore{}, &mockProductStore{}, newFakeCache(), OrderOptions{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{Description: "No Customer"})
	if storeerrors.KindOf(err) != storeerrors.KindRequiredField {
		t.Fatalf("expected required_field, got %v", err)
	}
	if calls := orders.getCalls(); len(calls) != 0 {
		t.Errorf("nothing may be saved without a customer id, got %v", calls)
	}
}

func TestOrderService_Create_CustomerNotFound(t *testing.T) {
	orders := &mockOrderStore{}
	customers := &mockCustomerStore{getResult: nil}
	fake := newFakeCache()
	svc := newOrderService(orders, customers, &mockProductStore{}, fake, OrderOptions{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Description: "Orphan Order",
		CustomerID:  int64ptr(42),
		ProductIDs:  []int64{1},
	})
	if !storeerrors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	// The failed reference must abort before any persistence or eviction.
	if calls := orders.getCalls(); len(calls) != 0 {
		t.Errorf("Save must not be called, got %v", calls)
	}
	if evicted := fake.evictedRegions(); len(evicted) != 0 {
		t.Errorf("nothing may be evicted, got %v", evicted)
	}
}

func TestOrderService_Create_DropsUnknownProducts(t *testing.T) {
	orders := &mockOrderStore{}
	customers := &mockCustomerStore{getResult: &entity.Customer{ID: 1, Name: "Alice"}}
	products := &mockProductStore{getByIDsResult: []*entity.Product{{ID: 1, Description: "Mouse"}}}
	svc := newOrderService(orders, customers, products, newFakeCache(), OrderOptions{})

	created, err := svc.Create(context.Background(), CreateOrderRequest{
		Description: "Partial Order",
		CustomerID:  int64ptr(1),
		ProductIDs:  []int64{1, 9999},
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if len(created.Products) != 1 || created.Products[0].ID != 1 {
		t.Errorf("expected only the existing product, got %v", created.Products)
	}
}

func TestOrderService_Create_StrictModeRejectsUnknownProducts(t *testing.T) {
	orders := &mockOrderStore{}
	customers := &mockCustomerStore{getResult: &entity.Customer{ID: 1, Name: "Alice"}}
	products := &mockProductStore{getByIDsResult: []*entity.Product{{ID: 1, Description: "Mouse"}}}
	svc := newOrderService(orders, customers, products, newFakeCache(), OrderOptions{StrictProducts: true})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Description: "Strict Order",
		CustomerID:  int64ptr(1),
		ProductIDs:  []int64{1, 9999},
	})
	if !storeerrors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if calls := orders.getCalls(); len(calls) != 0 {
		t.Errorf("Save must not be called in strict mode failure, got %v", calls)
	}
}

func TestOrderService_Create_DeduplicatesProductIDs(t *testing.T) {
	orders := &mockOrderStore{}
	customers := &mockCustomerStore{getResult: &entity.Customer{ID: 1, Name: "Alice"}}
	products := &mockProductStore{getByIDsResult: []*entity.Product{{ID: 1}, {ID: 2}}}
	svc := newOrderService(orders, customers, products, newFakeCache(), OrderOptions{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Description: "Duplicated",
		CustomerID:  int64ptr(1),
		ProductIDs:  []int64{1, 2, 1, 2, 1},
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if len(products.requestedIDs) != 2 {
		t.Errorf("expected deduplicated lookup [1 2], got %v", products.requestedIDs)
	}
}

func TestOrderService_Create_EmptyProductSet(t *testing.T) {
	orders := &mockOrderStore{}
	customers := &mockCustomerStore{getResult: &entity.Customer{ID: 1, Name: "Alice"}}
	products := &mockProductStore{}
	svc := newOrderService(orders, customers, products, newFakeCache(), OrderOptions{})

	created, err := svc.Create(context.Background(), CreateOrderRequest{
		Description: "No Products",
		CustomerID:  int64ptr(1),
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if len(created.Products) != 0 {
		t.Errorf("expected empty product set, got %v", created.Products)
	}
	if calls := products.getCalls(); len(calls) != 0 {
		t.Errorf("product store must not be queried for an empty set, got %v", calls)
	}
}

func TestOrderService_Create_EvictsOrderRegionsOnly(t *testing.T) {
	orders := &mockOrderStore{}
	customers := &mockCustomerStore{getResult: &entity.Customer{ID: 1, Name: "Alice"}}
	fake := newFakeCache()
	svc := newOrderService(orders, customers, &mockProductStore{}, fake, OrderOptions{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Description: "Scoped Eviction",
		CustomerID:  int64ptr(1),
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	evicted := fake.evictedRegions()
	for _, region := range orderRegions {
		if !containsRegion(evicted, region) {
			t.Errorf("expected region %s to be evicted", region)
		}
	}
	// An order write changes no customer or product fields.
	for _, region := range append(customerRegions, productRegions...) {
		if containsRegion(evicted, region) {
			t.Errorf("region %s must not be evicted by an order write", region)
		}
	}
}

func TestOrderService_Create_EvictProductViewsOption(t *testing.T) {
	orders := &mockOrderStore{}
	customers := &mockCustomerStore{getResult: &entity.Customer{ID: 1, Name: "Alice"}}
	fake := newFakeCache()
	svc := newOrderService(orders, customers, &mockProductStore{}, fake, OrderOptions{EvictProductViews: true})

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Description: "View Eviction",
		CustomerID:  int64ptr(1),
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	evicted := fake.evictedRegions()
	if !containsRegion(evicted, cache.RegionProductWithOrders) || !containsRegion(evicted, cache.RegionProductWithoutOrders) {
		t.Error("expected the product order views to be evicted")
	}
	if containsRegion(evicted, cache.RegionProductByID) {
		t.Error("product-by-id must stay cached even with view eviction on")
	}
}

func TestOrderService_List_CachesPage(t *testing.T) {
	orders := &mockOrderStore{}
	svc := newOrderService(orders, &mockCustomerStore{}, &mockProductStore{}, newFakeCache(), OrderOptions{})
	ctx := context.Background()

	req := storage.PageRequest{Page: 0, Size: 10}
	if _, err := svc.List(ctx, req); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if _, err := svc.List(ctx, req); err != nil {
		t.Fatalf("List() second call failed: %v", err)
	}
	if calls := orders.getCalls(); len(calls) != 1 {
		t.Errorf("expected 1 store call, got %v", calls)
	}
}
