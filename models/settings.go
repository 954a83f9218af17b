package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings is a de-facto singleton: the first document in the collection is
// "the" settings, and one is synthesized with defaults when none exists.
type Settings struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RestaurantName string             `bson:"restaurantName" json:"restaurantName"`
	Currency       string             `bson:"currency" json:"currency"`
	TaxRate        float64            `bson:"taxRate" json:"taxRate"`
	AlertEmail     string             `bson:"alertEmail,omitempty" json:"alertEmail,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings are the values synthesized on first read.
func DefaultSettings() Settings {
	return Settings{
		RestaurantName: "RestoPOS",
		Currency:       "₹",
		TaxRate:        0.05,
		UpdatedAt:      time.Now().UTC(),
	}
}

type Printer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Type      string             `bson:"type" json:"type"`
	Address   string             `bson:"address" json:"address"`
	IsDefault bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
