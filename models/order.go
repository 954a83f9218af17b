package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderType string

const (
	OrderDineIn  OrderType = "dine-in"
	OrderTakeout OrderType = "takeout"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// OrderItem carries a name/price snapshot of the menu item taken at checkout
// time, so later menu edits do not change what the guest was billed.
type OrderItem struct {
	MenuItemID   string   `bson:"menuItemId" json:"menuItemId"`
	Name         string   `bson:"name" json:"name"`
	Quantity     int      `bson:"quantity" json:"quantity"`
	Price        float64  `bson:"price" json:"price"`
	Modifiers    []string `bson:"modifiers" json:"modifiers"`
	Instructions string   `bson:"instructions" json:"instructions"`
}

// Order totals are supplied by the caller and stored as-is, the server does
// not recompute them.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderType     OrderType          `bson:"orderType" json:"orderType" binding:"required"`
	TableNumber   int                `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	TokenNumber   int                `bson:"tokenNumber,omitempty" json:"tokenNumber,omitempty"`
	Items         []OrderItem        `bson:"items" json:"items" binding:"required"`
	Status        OrderStatus        `bson:"status" json:"status"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Tax           float64            `bson:"tax" json:"tax"`
	Total         float64            `bson:"total" json:"total"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	KOTSent       bool               `bson:"kotSent" json:"kotSent"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
