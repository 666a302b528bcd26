package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a menu item (drinks, food, accessories) sold alongside play
// time. Category is a free-form slug ("drink", "food", ...) referenced by
// product-scope promotion rules.
type Product struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Category  string             `json:"category" bson:"category"`
	Price     float64            `json:"price" bson:"price"`
	Unit      string             `json:"unit" bson:"unit"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
