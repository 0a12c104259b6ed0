// Package storage implements the entity stores on bun. Single-record
// mutations are atomic at the database layer; the services own existence
// checks and NotFound signaling.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/storekit/storecore/entity"
)

var customerSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

// CustomerStore persists customers.
type CustomerStore struct {
	db *bun.DB
}

// NewCustomerStore returns a CustomerStore backed by db.
func NewCustomerStore(db *bun.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// Get returns the customer with the given id, or nil when absent.
func (s *CustomerStore) Get(ctx context.Context, id int64) (*entity.Customer, error) {
	customer := new(entity.Customer)
	err := s.db.NewSelect().Model(customer).Where("c.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Exists reports whether a customer with the given id exists.
func (s *CustomerStore) Exists(ctx context.Context, id int64) (bool, error) {
	return s.db.NewSelect().Model((*entity.Customer)(nil)).Where("c.id = ?", id).Exists(ctx)
}

// Save inserts the customer when it has no id yet, otherwise updates it in
// place. The assigned id is written back into the entity.
func (s *CustomerStore) Save(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if customer.ID == 0 {
		if _, err := s.db.NewInsert().Model(customer).Exec(ctx); err != nil {
			return nil, err
		}
		return customer, nil
	}
	if _, err := s.db.NewUpdate().Model(customer).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes the customer with the given id. The caller is responsible
// for confirming existence first.
func (s *CustomerStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().Model((*entity.Customer)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// List returns one page of customers ordered by the requested sort.
func (s *CustomerStore) List(ctx context.Context, req PageRequest) (Page[*entity.Customer], error) {
	return s.page(ctx, req, nil)
}

// SearchByName returns one page of customers whose name contains the query,
// case-insensitively and unanchored. A blank query is equivalent to List.
func (s *CustomerStore) SearchByName(ctx context.Context, query string, req PageRequest) (Page[*entity.Customer], error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.List(ctx, req)
	}

	return s.page(ctx, req, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(c.name) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	})
}

func (s *CustomerStore) page(ctx context.Context, req PageRequest, apply func(*bun.SelectQuery) *bun.SelectQuery) (Page[*entity.Customer], error) {
	var customers []*entity.Customer
	q := s.db.NewSelect().Model(&customers)
	if apply != nil {
		q = apply(q)
	}
	q = q.OrderExpr("? ?", bun.Ident(sortColumn(customerSortColumns, req.SortBy)), bun.Safe(req.direction())).
		Limit(req.Size).
		Offset(req.offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return Page[*entity.Customer]{}, err
	}
	return NewPage(customers, req, total), nil
}
