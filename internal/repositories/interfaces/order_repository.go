package interfaces

import (
	"context"

	"tableserve/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// ListByRestaurant returns orders newest-first; it backs both the REST
	// listing and the kitchen-board snapshot.
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Order, error)
}
