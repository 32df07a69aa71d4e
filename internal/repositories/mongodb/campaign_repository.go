package mongodb

import (
	"context"
	"fmt"
	"time"

	"tableserve/internal/apperrors"
	"tableserve/internal/models"
	"tableserve/internal/repositories/interfaces"
	"tableserve/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type campaignRepository struct {
	collection *mongo.Collection
	cache      CacheService
	cacheTTL   time.Duration
}

func NewCampaignRepository(db *mongo.Database, cache CacheService, cacheTTL time.Duration) interfaces.CampaignRepository {
	return &campaignRepository{
		collection: db.Collection("campaigns"),
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, campaign)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	r.invalidateActiveCache(ctx, campaign.RestaurantID)

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("campaign %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

func (r *campaignRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFoundf("campaign %s", id.Hex())
	}

	r.invalidateAllActiveCaches(ctx, id)

	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.invalidateAllActiveCaches(ctx, id)

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFoundf("campaign %s", id.Hex())
	}

	return nil
}

func (r *campaignRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *campaignRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	filter := bson.M{"restaurant_id": restaurantID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if params != nil {
		findOpts = params.FindOptions().SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []*models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, 0, fmt.Errorf("failed to decode campaigns: %w", err)
	}

	return campaigns, total, nil
}

func (r *campaignRepository) ListActive(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Campaign, error) {
	cacheKey := activeCampaignsKey(restaurantID)
	if r.cache != nil {
		var cached []*models.Campaign
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	cursor, err := r.collection.Find(
		ctx,
		bson.M{"restaurant_id": restaurantID, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []*models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to decode campaigns: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, campaigns, r.cacheTTL)
	}

	return campaigns, nil
}

func activeCampaignsKey(restaurantID primitive.ObjectID) string {
	return fmt.Sprintf("campaigns_active_%s", restaurantID.Hex())
}

func (r *campaignRepository) invalidateActiveCache(ctx context.Context, restaurantID primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, activeCampaignsKey(restaurantID))
	}
}

// invalidateAllActiveCaches resolves the restaurant from the campaign id so
// mutations that only know the id still bust the right list.
func (r *campaignRepository) invalidateAllActiveCaches(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}

	var campaign models.Campaign
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign); err == nil {
		r.invalidateActiveCache(ctx, campaign.RestaurantID)
	}
}
