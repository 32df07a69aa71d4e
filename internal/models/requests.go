package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCampaignRequest struct {
	Name     string                `json:"name" binding:"required"`
	Kind     CampaignKind          `json:"kind" binding:"required"`
	IsActive *bool                 `json:"is_active"`
	Lottery  *LotteryConfig        `json:"lottery,omitempty"`
	Timed    *TimedPromotionConfig `json:"timed,omitempty"`
}

// UpdateCampaignRequest carries partial edits; nil fields are left untouched.
// The campaign kind itself is immutable after creation.
type UpdateCampaignRequest struct {
	Name     *string               `json:"name,omitempty"`
	IsActive *bool                 `json:"is_active,omitempty"`
	Lottery  *LotteryConfig        `json:"lottery,omitempty"`
	Timed    *TimedPromotionConfig `json:"timed,omitempty"`
}

type ToggleCampaignRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type GenerateCouponRequest struct {
	CampaignID primitive.ObjectID `json:"campaign_id" binding:"required"`
	DeviceID   string             `json:"device_id" binding:"required"`
}

type OrderItemRequest struct {
	ProductID primitive.ObjectID `json:"product_id" binding:"required"`
	Quantity  int                `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	TableID    string             `json:"table_id" binding:"required"`
	TableLabel string             `json:"table_label"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode string             `json:"coupon_code,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status          OrderStatus `json:"status" binding:"required"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
}
