package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableserve/internal/apperrors"
	"tableserve/internal/models"
	"tableserve/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type couponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
	}
}

func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now()
	coupon.Code = strings.ToUpper(coupon.Code)

	_, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("coupon %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, restaurantID primitive.ObjectID, code string) (*models.Coupon, error) {
	code = strings.ToUpper(code)

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"restaurant_id": restaurantID, "code": code}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFoundf("coupon code %s", code)
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) CodeExists(ctx context.Context, restaurantID primitive.ObjectID, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"restaurant_id": restaurantID,
		"code":          strings.ToUpper(code),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check coupon code: %w", err)
	}
	return count > 0, nil
}

func (r *couponRepository) ListByDevice(ctx context.Context, restaurantID primitive.ObjectID, deviceID string) ([]*models.Coupon, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"restaurant_id": restaurantID, "device_id": deviceID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons by device: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

func (r *couponRepository) CountByDeviceSince(ctx context.Context, restaurantID primitive.ObjectID, deviceID string, since time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"restaurant_id": restaurantID,
		"device_id":     deviceID,
		"created_at":    bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count device coupons: %w", err)
	}
	return count, nil
}

// Consume conditionally advances active -> used. The status filter is what
// guarantees exactly one winner when two checkouts race: the loser matches
// nothing and gets ErrRedemptionConflict, aborting its transaction.
func (r *couponRepository) Consume(ctx context.Context, id primitive.ObjectID, orderID primitive.ObjectID, usedAt time.Time) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.CouponStatusActive},
		bson.M{"$set": bson.M{
			"status":   models.CouponStatusUsed,
			"used_at":  usedAt,
			"order_id": orderID,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to consume coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.Conflictf("coupon %s is no longer active", id.Hex())
	}

	return nil
}

func (r *couponRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{
			"status":      models.CouponStatusActive,
			"valid_until": bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{"status": models.CouponStatusExpired}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire coupons: %w", err)
	}
	return result.ModifiedCount, nil
}
