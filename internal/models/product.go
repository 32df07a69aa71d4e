package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is owned by the catalog collaborator; the engine only reads it for
// eligibility checks, price snapshots and live discounted menu pricing.
type Product struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RestaurantID primitive.ObjectID `json:"restaurant_id" bson:"restaurant_id"`
	CategoryID   primitive.ObjectID `json:"category_id" bson:"category_id"`
	Name         string             `json:"name" bson:"name"`
	Price        int64              `json:"price" bson:"price"`
	IsAvailable  bool               `json:"is_available" bson:"is_available"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
