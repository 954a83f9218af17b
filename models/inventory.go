package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string

const (
	TxnDeduct     TransactionType = "deduct"
	TxnRefill     TransactionType = "refill"
	TxnWastage    TransactionType = "wastage"
	TxnAdjustment TransactionType = "adjustment"
)

// Inventory stock is real-valued and may go negative, there is no floor.
// LowStock is derived (stock <= minThreshold) and recomputed on reads and
// writes rather than being authoritative.
type Inventory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name" binding:"required"`
	Category     string             `bson:"category" json:"category"`
	Unit         string             `bson:"unit" json:"unit"`
	Stock        float64            `bson:"stock" json:"stock"`
	MinThreshold float64            `bson:"minThreshold" json:"minThreshold"`
	Price        float64            `bson:"price,omitempty" json:"price,omitempty"`
	LowStock     bool               `bson:"lowStock" json:"lowStock"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// InventoryTransaction is an append-only log entry. Never updated or deleted.
type InventoryTransaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	InventoryID string             `bson:"inventoryId" json:"inventoryId"`
	Type        TransactionType    `bson:"type" json:"type"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	Reason      string             `bson:"reason" json:"reason"`
	OrderID     string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// AdjustmentRequest is the body of POST /inventory/:id/adjust. The sign is
// fixed by the type: refill and adjustment add, wastage subtracts.
type AdjustmentRequest struct {
	Type     TransactionType `json:"type" binding:"required"`
	Quantity float64         `json:"quantity" binding:"required,gt=0"`
	Reason   string          `json:"reason"`
}
