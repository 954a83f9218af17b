package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TablePreparing TableStatus = "preparing"
	TableServing   TableStatus = "serving"
	TableBilling   TableStatus = "billing"
)

// Table is one physical table. CurrentOrder is non-nil iff the table is not
// available.
type Table struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TableNumber  int                `bson:"tableNumber" json:"tableNumber" binding:"required"`
	Capacity     int                `bson:"capacity" json:"capacity"`
	Status       TableStatus        `bson:"status" json:"status" binding:"required"`
	CurrentOrder *string            `bson:"currentOrder" json:"currentOrder"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
