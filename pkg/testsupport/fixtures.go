package testsupport

import (
	"context"
	"database/sql"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/storekit/storecore/entity"
	"github.com/storekit/storecore/storage"
)

// NewTestDB opens an in-memory SQLite database with the full schema applied.
// The database is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file::memory:?_fk=1")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// A second connection would see its own empty :memory: database.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	storage.RegisterModels(db)

	if err := storage.CreateSchema(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// SeedCustomer inserts a customer and returns it with its generated id.
func SeedCustomer(t *testing.T, db *bun.DB, name string) *entity.Customer {
	t.Helper()

	customer := &entity.Customer{Name: name}
	if _, err := db.NewInsert().Model(customer).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed customer %q: %v", name, err)
	}
	return customer
}

// SeedCustomers inserts one customer per name, in order.
func SeedCustomers(t *testing.T, db *bun.DB, names ...string) []*entity.Customer {
	t.Helper()

	customers := make([]*entity.Customer, 0, len(names))
	for _, name := range names {
		customers = append(customers, SeedCustomer(t, db, name))
	}
	return customers
}

// SeedProduct inserts a product and returns it with its generated id.
func SeedProduct(t *testing.T, db *bun.DB, description string) *entity.Product {
	t.Helper()

	product := &entity.Product{Description: description}
	if _, err := db.NewInsert().Model(product).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed product %q: %v", description, err)
	}
	return product
}

// SeedProducts inserts one product per description, in order.
func SeedProducts(t *testing.T, db *bun.DB, descriptions ...string) []*entity.Product {
	t.Helper()

	products := make([]*entity.Product, 0, len(descriptions))
	for _, description := range descriptions {
		products = append(products, SeedProduct(t, db, description))
	}
	return products
}

// SeedOrder inserts an order for the customer along with its product join
// rows, and returns it with its generated id.
func SeedOrder(t *testing.T, db *bun.DB, description string, customer *entity.Customer, products ...*entity.Product) *entity.Order {
	t.Helper()

	order := &entity.Order{Description: description, CustomerID: customer.ID}
	if _, err := db.NewInsert().Model(order).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed order %q: %v", description, err)
	}

	for _, product := range products {
		join := &entity.OrderProduct{OrderID: order.ID, ProductID: product.ID}
		if _, err := db.NewInsert().Model(join).Exec(context.Background()); err != nil {
			t.Fatalf("failed to seed order product join (%d, %d): %v", order.ID, product.ID, err)
		}
	}
	return order
}
