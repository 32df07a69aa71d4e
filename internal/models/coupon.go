package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponStatus string

const (
	CouponStatusActive  CouponStatus = "active"
	CouponStatusUsed    CouponStatus = "used"
	CouponStatusExpired CouponStatus = "expired"
)

// Coupon is a single-use grant produced by a lottery draw. The reward terms
// are denormalized from the issuing campaign at draw time, so later campaign
// edits never change an already-issued coupon. Status is monotonic:
// active -> used or active -> expired, nothing else.
type Coupon struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	RestaurantID primitive.ObjectID  `json:"restaurant_id" bson:"restaurant_id"`
	CampaignID   primitive.ObjectID  `json:"campaign_id" bson:"campaign_id"`
	Code         string              `json:"code" bson:"code"`
	Status       CouponStatus        `json:"status" bson:"status"`
	RewardKind   RewardKind          `json:"reward_kind" bson:"reward_kind"`
	RewardValue  int64               `json:"reward_value" bson:"reward_value"`
	Description  string              `json:"description" bson:"description"`
	DeviceID     string              `json:"device_id" bson:"device_id"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	ValidUntil   time.Time           `json:"valid_until" bson:"valid_until"`
	UsedAt       *time.Time          `json:"used_at,omitempty" bson:"used_at,omitempty"`
	OrderID      *primitive.ObjectID `json:"order_id,omitempty" bson:"order_id,omitempty"`
}

func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.ValidUntil)
}
