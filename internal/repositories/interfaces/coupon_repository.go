package interfaces

import (
	"context"
	"time"

	"tableserve/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	GetByCode(ctx context.Context, restaurantID primitive.ObjectID, code string) (*models.Coupon, error)
	CodeExists(ctx context.Context, restaurantID primitive.ObjectID, code string) (bool, error)

	// ListByDevice returns a device's coupons newest-first for wallet display.
	ListByDevice(ctx context.Context, restaurantID primitive.ObjectID, deviceID string) ([]*models.Coupon, error)

	// CountByDeviceSince counts issuances for the daily device cap.
	CountByDeviceSince(ctx context.Context, restaurantID primitive.ObjectID, deviceID string, since time.Time) (int64, error)

	// Consume marks an active coupon used and links the consuming order in a
	// single conditional write. It fails with ErrRedemptionConflict when the
	// coupon is no longer active, which is how a lost redemption race
	// surfaces inside the transaction.
	Consume(ctx context.Context, id primitive.ObjectID, orderID primitive.ObjectID, usedAt time.Time) error

	// ExpireStale flips active coupons past their validity window to expired.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
