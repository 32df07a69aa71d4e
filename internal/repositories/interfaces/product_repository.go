package interfaces

import (
	"context"

	"tableserve/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository is a read-only view onto the catalog collaborator's data.
type ProductRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Product, error)
}
