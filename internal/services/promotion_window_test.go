package services

import (
	"testing"
	"time"

	"tableserve/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func recurringCampaign(days []int, start, end string) *models.Campaign {
	return &models.Campaign{
		ID:       primitive.NewObjectID(),
		Name:     "Happy Hour",
		Kind:     models.CampaignKindTimedPromotion,
		IsActive: true,
		Timed: &models.TimedPromotionConfig{
			Recurrence: models.RecurrenceRecurring,
			DaysOfWeek: days,
			StartTime:  start,
			EndTime:    end,
			Discount:   &models.PromotionDiscount{Type: models.DiscountTypePercentage, Value: 20},
			BannerText: "Happy hour, 20% off",
		},
	}
}

func TestIsPromotionActive_RecurringWindow(t *testing.T) {
	// Friday 17:00-20:00. 2026-01-02 is a Friday, 2026-01-01 a Thursday.
	campaign := recurringCampaign([]int{5}, "17:00", "20:00")

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"inside window", time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC), true},
		{"at start boundary", time.Date(2026, 1, 2, 17, 0, 0, 0, time.UTC), true},
		{"at end boundary", time.Date(2026, 1, 2, 20, 0, 0, 0, time.UTC), true},
		{"just after end", time.Date(2026, 1, 2, 20, 1, 0, 0, time.UTC), false},
		{"before start", time.Date(2026, 1, 2, 16, 59, 0, 0, time.UTC), false},
		{"right day of week wrong day", time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPromotionActive(campaign, tt.now))
		})
	}
}

func TestIsPromotionActive_OneShotWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)

	campaign := &models.Campaign{
		ID:       primitive.NewObjectID(),
		Kind:     models.CampaignKindTimedPromotion,
		IsActive: true,
		Timed: &models.TimedPromotionConfig{
			Recurrence: models.RecurrenceOneShot,
			StartDate:  &start,
			EndDate:    &end,
			Discount:   &models.PromotionDiscount{Type: models.DiscountTypeFixed, Value: 200},
			BannerText: "Anniversary week",
		},
	}

	assert.True(t, IsPromotionActive(campaign, time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)))
	assert.True(t, IsPromotionActive(campaign, start))
	assert.True(t, IsPromotionActive(campaign, end))
	assert.False(t, IsPromotionActive(campaign, start.Add(-time.Minute)))
	assert.False(t, IsPromotionActive(campaign, end.Add(time.Minute)))
}

func TestIsPromotionActive_ToggleGatesWindow(t *testing.T) {
	campaign := recurringCampaign([]int{5}, "17:00", "20:00")
	campaign.IsActive = false

	now := time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC)
	assert.False(t, IsPromotionActive(campaign, now))
}

func TestIsPromotionActive_WrongKindOrNil(t *testing.T) {
	now := time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC)

	assert.False(t, IsPromotionActive(nil, now))

	lottery := &models.Campaign{
		Kind:     models.CampaignKindLottery,
		IsActive: true,
		Lottery:  &models.LotteryConfig{WinProbability: 10},
	}
	assert.False(t, IsPromotionActive(lottery, now))
}

func TestCalculateDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount *models.PromotionDiscount
		want     int64
	}{
		{"20 percent off", 1000, &models.PromotionDiscount{Type: models.DiscountTypePercentage, Value: 20}, 800},
		{"percentage rounds half up", 999, &models.PromotionDiscount{Type: models.DiscountTypePercentage, Value: 15}, 849},
		{"fixed amount off", 1000, &models.PromotionDiscount{Type: models.DiscountTypeFixed, Value: 300}, 700},
		{"fixed clamped at zero", 300, &models.PromotionDiscount{Type: models.DiscountTypeFixed, Value: 500}, 0},
		{"nil discount keeps price", 1000, nil, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateDiscountedPrice(tt.price, tt.discount))
		})
	}
}

func TestGetProductPrice_CategoryTargeting(t *testing.T) {
	drinks := primitive.NewObjectID()
	food := primitive.NewObjectID()

	campaign := recurringCampaign([]int{5}, "17:00", "20:00")
	campaign.Timed.TargetCategories = []primitive.ObjectID{drinks}

	beer := &models.Product{ID: primitive.NewObjectID(), CategoryID: drinks, Name: "Beer", Price: 600}
	burger := &models.Product{ID: primitive.NewObjectID(), CategoryID: food, Name: "Burger", Price: 1200}

	discounted := GetProductPrice(beer, campaign)
	assert.True(t, discounted.HasDiscount)
	assert.Equal(t, int64(480), discounted.Price)
	if assert.NotNil(t, discounted.OriginalPrice) {
		assert.Equal(t, int64(600), *discounted.OriginalPrice)
	}

	full := GetProductPrice(burger, campaign)
	assert.False(t, full.HasDiscount)
	assert.Equal(t, int64(1200), full.Price)
	assert.Nil(t, full.OriginalPrice)
}

func TestGetProductPrice_EmptyTargetsAppliesToAll(t *testing.T) {
	campaign := recurringCampaign([]int{5}, "17:00", "20:00")

	product := &models.Product{ID: primitive.NewObjectID(), CategoryID: primitive.NewObjectID(), Price: 1000}
	got := GetProductPrice(product, campaign)

	assert.True(t, got.HasDiscount)
	assert.Equal(t, int64(800), got.Price)
}

func TestGetProductPrice_NoCampaign(t *testing.T) {
	product := &models.Product{ID: primitive.NewObjectID(), Price: 1000}
	got := GetProductPrice(product, nil)

	assert.False(t, got.HasDiscount)
	assert.Equal(t, int64(1000), got.Price)
	assert.Nil(t, got.OriginalPrice)
}

func TestTimeUntilEnd(t *testing.T) {
	campaign := recurringCampaign([]int{5}, "17:00", "20:00")

	inside := time.Date(2026, 1, 2, 19, 30, 0, 0, time.UTC)
	remaining := TimeUntilEnd(campaign, inside)
	if assert.NotNil(t, remaining) {
		assert.Equal(t, 30*time.Minute, *remaining)
	}

	outside := time.Date(2026, 1, 2, 21, 0, 0, 0, time.UTC)
	assert.Nil(t, TimeUntilEnd(campaign, outside))
}
