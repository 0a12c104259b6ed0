package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/storekit/storecore/entity"
)

var orderSortColumns = map[string]string{
	"id":          "id",
	"description": "description",
	"customer_id": "customer_id",
	"customerid":  "customer_id",
}

// OrderStore persists orders together with their product join rows.
type OrderStore struct {
	db *bun.DB
}

// NewOrderStore returns an OrderStore backed by db.
func NewOrderStore(db *bun.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Get returns the order with the given id, with its customer and products
// loaded, or nil when absent.
func (s *OrderStore) Get(ctx context.Context, id int64) (*entity.Order, error) {
	order := new(entity.Order)
	err := s.db.NewSelect().Model(order).
		Relation("Customer").
		Relation("Products").
		Where("o.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Exists reports whether an order with the given id exists.
func (s *OrderStore) Exists(ctx context.Context, id int64) (bool, error) {
	return s.db.NewSelect().Model((*entity.Order)(nil)).Where("o.id = ?", id).Exists(ctx)
}

// Save persists the order and its product set in one transaction: the order
// row plus one order_products row per product. The assigned id is written
// back into the entity.
func (s *OrderStore) Save(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if order.ID == 0 {
			if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
				return err
			}
		} else {
			if _, err := tx.NewUpdate().Model(order).WherePK().Exec(ctx); err != nil {
				return err
			}
			if _, err := tx.NewDelete().Model((*entity.OrderProduct)(nil)).Where("order_id = ?", order.ID).Exec(ctx); err != nil {
				return err
			}
		}

		if len(order.Products) == 0 {
			return nil
		}

		joins := make([]*entity.OrderProduct, 0, len(order.Products))
		for _, product := range order.Products {
			joins = append(joins, &entity.OrderProduct{OrderID: order.ID, ProductID: product.ID})
		}
		_, err := tx.NewInsert().Model(&joins).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List returns one page of orders with their products loaded.
func (s *OrderStore) List(ctx context.Context, req PageRequest) (Page[*entity.Order], error) {
	var orders []*entity.Order
	q := s.db.NewSelect().Model(&orders).
		Relation("Products").
		OrderExpr("? ?", bun.Ident(sortColumn(orderSortColumns, req.SortBy)), bun.Safe(req.direction())).
		Limit(req.Size).
		Offset(req.offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return Page[*entity.Order]{}, err
	}
	return NewPage(orders, req, total), nil
}

// ListAll returns every order, unpaged, with products loaded, in id order.
func (s *OrderStore) ListAll(ctx context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order
	err := s.db.NewSelect().Model(&orders).
		Relation("Products").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}
