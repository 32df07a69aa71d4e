package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignKind string
type RewardKind string
type DiscountType string
type Recurrence string

const (
	CampaignKindLottery        CampaignKind = "lottery"
	CampaignKindTimedPromotion CampaignKind = "timed_promotion"

	RewardKindPercentage  RewardKind = "percentage"
	RewardKindFixedAmount RewardKind = "fixed_amount"
	RewardKindFreeItem    RewardKind = "free_item"

	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"

	RecurrenceOneShot   Recurrence = "one_shot"
	RecurrenceRecurring Recurrence = "recurring"
)

// LotteryConfig holds the fields that only exist on lottery campaigns.
type LotteryConfig struct {
	WinProbability    float64    `json:"win_probability" bson:"win_probability"`
	RewardKind        RewardKind `json:"reward_kind" bson:"reward_kind"`
	RewardValue       int64      `json:"reward_value" bson:"reward_value"`
	RewardDescription string     `json:"reward_description" bson:"reward_description"`
	ValidityDays      int        `json:"validity_days" bson:"validity_days"`
}

type PromotionDiscount struct {
	Type  DiscountType `json:"type" bson:"type"`
	Value int64        `json:"value" bson:"value"`
}

// TimedPromotionConfig holds the fields that only exist on timed promotions.
// StartDate/EndDate apply to one_shot campaigns; DaysOfWeek (0=Sunday) and
// the "HH:MM" StartTime/EndTime apply to recurring ones. Windows may not
// cross midnight.
type TimedPromotionConfig struct {
	Recurrence       Recurrence           `json:"recurrence" bson:"recurrence"`
	StartDate        *time.Time           `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate          *time.Time           `json:"end_date,omitempty" bson:"end_date,omitempty"`
	DaysOfWeek       []int                `json:"days_of_week,omitempty" bson:"days_of_week,omitempty"`
	StartTime        string               `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime          string               `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Discount         *PromotionDiscount   `json:"discount" bson:"discount"`
	TargetCategories []primitive.ObjectID `json:"target_categories" bson:"target_categories"`
	BannerText       string               `json:"banner_text" bson:"banner_text"`
}

// Campaign is a promotion definition owned by one restaurant. Exactly one of
// Lottery/Timed is set, matching Kind; the validator enforces this so code
// downstream can trust the discriminator.
type Campaign struct {
	ID           primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	RestaurantID primitive.ObjectID    `json:"restaurant_id" bson:"restaurant_id"`
	Name         string                `json:"name" bson:"name"`
	Kind         CampaignKind          `json:"kind" bson:"kind"`
	Lottery      *LotteryConfig        `json:"lottery,omitempty" bson:"lottery,omitempty"`
	Timed        *TimedPromotionConfig `json:"timed,omitempty" bson:"timed,omitempty"`
	IsActive     bool                  `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at" bson:"updated_at"`
}

// TargetsCategory reports whether a timed promotion applies to the given
// category. An empty target list means every product is eligible.
func (c *TimedPromotionConfig) TargetsCategory(categoryID primitive.ObjectID) bool {
	if len(c.TargetCategories) == 0 {
		return true
	}
	for _, id := range c.TargetCategories {
		if id == categoryID {
			return true
		}
	}
	return false
}
