// Package entity defines the persistent domain records for the store core.
//
// Order is the owning side of both relationships: it carries the customer
// foreign key and the order_products join rows. Customer.Orders and
// Product.Orders are inverse views that are only populated when a query
// explicitly asks for them; nothing maintains them as back-pointers.
package entity

import "github.com/uptrace/bun"

// Customer is a store customer. Name is always non-blank and title-cased
// by the time it reaches the store.
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`

	// Inverse view, loaded on demand via Relation("Orders").
	Orders []*Order `bun:"rel:has-many,join:id=customer_id" json:"-"`
}

// Product is a purchasable item. Description is always non-blank and
// title-cased by the time it reaches the store.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Description string `bun:"description,notnull" json:"description"`

	// Inverse view, loaded on demand via Relation("Orders").
	Orders []*Order `bun:"m2m:order_products,join:Product=Order" json:"-"`
}

// Order references exactly one Customer and zero or more Products.
// Description is free text.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Description string `bun:"description" json:"description"`
	CustomerID  int64  `bun:"customer_id,notnull" json:"customer_id"`

	Customer *Customer  `bun:"rel:belongs-to,join:customer_id=id" json:"-"`
	Products []*Product `bun:"m2m:order_products,join:Order=Product" json:"-"`
}

// OrderProduct is the join row behind the Order↔Product relationship.
type OrderProduct struct {
	bun.BaseModel `bun:"table:order_products,alias:op"`

	OrderID   int64    `bun:"order_id,pk"`
	Order     *Order   `bun:"rel:belongs-to,join:order_id=id"`
	ProductID int64    `bun:"product_id,pk"`
	Product   *Product `bun:"rel:belongs-to,join:product_id=id"`
}
