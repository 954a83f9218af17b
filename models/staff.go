package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee PINs are stored verbatim and used as bearer credentials for the
// till login screen.
type Employee struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Role      string             `bson:"role" json:"role" binding:"required"`
	Pin       string             `bson:"pin" json:"pin" binding:"required,len=4,numeric"`
	Phone     string             `bson:"phone" json:"phone"`
	Salary    float64            `bson:"salary" json:"salary"`
	Photo     string             `bson:"photo" json:"photo"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type Expense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Category    string             `bson:"category" json:"category" binding:"required"`
	Amount      float64            `bson:"amount" json:"amount" binding:"required,gt=0"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
}
