package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KOTStatus string

const (
	KOTPending   KOTStatus = "pending"
	KOTPreparing KOTStatus = "preparing"
	KOTCompleted KOTStatus = "completed"
	KOTCancelled KOTStatus = "cancelled"
)

// KOTBatch is a kitchen ticket cut from one order. It copies the item list at
// ticket time; an order can have more than one ticket if it is re-sent.
type KOTBatch struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID     string             `bson:"orderId" json:"orderId" binding:"required"`
	OrderType   OrderType          `bson:"orderType" json:"orderType"`
	TableNumber int                `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	TokenNumber int                `bson:"tokenNumber,omitempty" json:"tokenNumber,omitempty"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Status      KOTStatus          `bson:"status" json:"status"`
	PrinterUsed string             `bson:"printerUsed,omitempty" json:"printerUsed,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
