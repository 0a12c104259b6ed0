package storage

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/storekit/storecore/entity"
)

// RegisterModels registers the many-to-many join model with bun. Must be
// called once per DB before any Relation("Products"/"Orders") query.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*entity.OrderProduct)(nil))
}

// CreateSchema creates the four tables if they do not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*entity.Customer)(nil),
		(*entity.Product)(nil),
		(*entity.Order)(nil),
		(*entity.OrderProduct)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
