package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModifierGroup is a named group of options a guest can pick for a menu item,
// e.g. "Spice level" with options mild/medium/hot.
type ModifierGroup struct {
	Name     string   `bson:"name" json:"name"`
	Options  []string `bson:"options" json:"options"`
	Required bool     `bson:"required" json:"required"`
}

// IngredientRequirement links a menu item to an inventory item and states how
// much of it one serving consumes.
type IngredientRequirement struct {
	IngredientID string  `bson:"ingredientId" json:"ingredientId"`
	Quantity     float64 `bson:"quantity" json:"quantity"`
	Unit         string  `bson:"unit" json:"unit"`
}

type MenuItem struct {
	ID           primitive.ObjectID      `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string                  `bson:"name" json:"name" binding:"required"`
	Category     string                  `bson:"category" json:"category" binding:"required"`
	Price        float64                 `bson:"price" json:"price" binding:"gte=0"`
	Emoji        string                  `bson:"emoji" json:"emoji"`
	Image        string                  `bson:"image" json:"image"`
	Stock        int                     `bson:"stock" json:"stock"`
	SoldOut      bool                    `bson:"soldOut" json:"soldOut"`
	Description  string                  `bson:"description" json:"description"`
	Modifiers    []ModifierGroup         `bson:"modifiers" json:"modifiers"`
	SpecialFlags []string                `bson:"specialFlags" json:"specialFlags"`
	Ingredients  []IngredientRequirement `bson:"ingredients" json:"ingredients"`
	CreatedAt    time.Time               `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time               `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
