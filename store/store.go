package store

import (
	"context"
	"errors"
)

// Collection names used across the backend.
const (
	MenuItems             = "menu_items"
	Tables                = "tables"
	Orders                = "orders"
	KOTBatches            = "kot_batches"
	Inventory             = "inventory"
	InventoryTransactions = "inventory_transactions"
	Employees             = "employees"
	Expenses              = "expenses"
	Settings              = "settings"
	Printers              = "printers"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("document not found")

// Filter selects documents by top-level field. Values are matched by equality
// unless they are an operator map using the Mongo operators $gte, $lte, $gt,
// $lt, $ne or $in.
type Filter = map[string]interface{}

// Query shapes a Find: Sort is a field name, with a "-" prefix for descending
// order; Limit of 0 means no limit.
type Query struct {
	Filter Filter
	Sort   string
	Limit  int64
}

// Store is the document-store gateway. It offers per-collection CRUD with
// simple filters; there are no transactions across collections, and only
// single-document updates are atomic.
type Store interface {
	Find(ctx context.Context, collection string, q Query, results interface{}) error
	FindOne(ctx context.Context, collection string, filter Filter, result interface{}) error
	InsertOne(ctx context.Context, collection string, doc interface{}) (string, error)
	InsertMany(ctx context.Context, collection string, docs []interface{}) error
	UpdateOne(ctx context.Context, collection string, filter Filter, set map[string]interface{}) error
	IncOne(ctx context.Context, collection string, filter Filter, field string, delta float64) error
	DeleteOne(ctx context.Context, collection string, filter Filter) error
}
