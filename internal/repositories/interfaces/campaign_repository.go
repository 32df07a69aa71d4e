package interfaces

import (
	"context"

	"tableserve/internal/models"
	"tableserve/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error

	// ListByRestaurant returns campaigns newest-first.
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error)
	ListActive(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Campaign, error)
}
