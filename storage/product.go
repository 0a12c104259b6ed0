package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/storekit/storecore/entity"
)

var productSortColumns = map[string]string{
	"id":          "id",
	"description": "description",
}

// ProductStore persists products and answers the order-derived views.
type ProductStore struct {
	db *bun.DB
}

// NewProductStore returns a ProductStore backed by db.
func NewProductStore(db *bun.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Get returns the product with the given id, or nil when absent.
func (s *ProductStore) Get(ctx context.Context, id int64) (*entity.Product, error) {
	product := new(entity.Product)
	err := s.db.NewSelect().Model(product).Where("p.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByIDs returns the products whose ids exist, in id order. Missing ids
// are simply absent from the result.
func (s *ProductStore) GetByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []*entity.Product
	err := s.db.NewSelect().Model(&products).
		Where("p.id IN (?)", bun.In(ids)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Exists reports whether a product with the given id exists.
func (s *ProductStore) Exists(ctx context.Context, id int64) (bool, error) {
	return s.db.NewSelect().Model((*entity.Product)(nil)).Where("p.id = ?", id).Exists(ctx)
}

// Save inserts the product when it has no id yet, otherwise updates it.
func (s *ProductStore) Save(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.ID == 0 {
		if _, err := s.db.NewInsert().Model(product).Exec(ctx); err != nil {
			return nil, err
		}
		return product, nil
	}
	if _, err := s.db.NewUpdate().Model(product).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product with the given id. The caller is responsible
// for confirming existence first.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().Model((*entity.Product)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// List returns one page of products ordered by the requested sort.
func (s *ProductStore) List(ctx context.Context, req PageRequest) (Page[*entity.Product], error) {
	return s.page(ctx, req, nil)
}

// ListAll returns every product, unpaged, in id order.
func (s *ProductStore) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := s.db.NewSelect().Model(&products).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchByDescription returns one page of products whose description
// contains the query, case-insensitively and unanchored. A blank query is
// equivalent to List.
func (s *ProductStore) SearchByDescription(ctx context.Context, query string, req PageRequest) (Page[*entity.Product], error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.List(ctx, req)
	}

	return s.page(ctx, req, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(p.description) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	})
}

// SearchAllByDescription is the unpaged form of SearchByDescription.
func (s *ProductStore) SearchAllByDescription(ctx context.Context, query string) ([]*entity.Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.ListAll(ctx)
	}

	var products []*entity.Product
	err := s.db.NewSelect().Model(&products).
		Where("LOWER(p.description) LIKE ?", "%"+strings.ToLower(trimmed)+"%").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// WithOrders returns one page of distinct products that appear in at least
// one order's product set.
func (s *ProductStore) WithOrders(ctx context.Context, req PageRequest) (Page[*entity.Product], error) {
	return s.page(ctx, req, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("EXISTS (SELECT 1 FROM order_products AS op WHERE op.product_id = p.id)")
	})
}

// WithoutOrders returns one page of products that appear in no order.
func (s *ProductStore) WithoutOrders(ctx context.Context, req PageRequest) (Page[*entity.Product], error) {
	return s.page(ctx, req, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("NOT EXISTS (SELECT 1 FROM order_products AS op WHERE op.product_id = p.id)")
	})
}

func (s *ProductStore) page(ctx context.Context, req PageRequest, apply func(*bun.SelectQuery) *bun.SelectQuery) (Page[*entity.Product], error) {
	var products []*entity.Product
	q := s.db.NewSelect().Model(&products)
	if apply != nil {
		q = apply(q)
	}
	q = q.OrderExpr("? ?", bun.Ident(sortColumn(productSortColumns, req.SortBy)), bun.Safe(req.direction())).
		Limit(req.Size).
		Offset(req.offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return Page[*entity.Product]{}, err
	}
	return NewPage(products, req, total), nil
}
