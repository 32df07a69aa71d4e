package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"tableserve/internal/apperrors"
	"tableserve/internal/config"
	"tableserve/internal/models"
	"tableserve/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var couponCodePattern = regexp.MustCompile(`^LUCKY-[A-Z0-9]{5}$`)

func testPromotionConfig() *config.PromotionConfig {
	return &config.PromotionConfig{
		CouponCodePrefix:     "LUCKY",
		CouponCodeLength:     5,
		DailyDeviceCap:       3,
		MinValidityDays:      1,
		MaxValidityDays:      90,
		RedemptionMaxRetries: 3,
		RedemptionBackoff:    time.Millisecond,
		CodeMaxAttempts:      5,
	}
}

func lotteryCampaign(probability float64) *models.Campaign {
	return &models.Campaign{
		ID:       primitive.NewObjectID(),
		Name:     "Scratch and Win",
		Kind:     models.CampaignKindLottery,
		IsActive: true,
		Lottery: &models.LotteryConfig{
			WinProbability:    probability,
			RewardKind:        models.RewardKindPercentage,
			RewardValue:       10,
			RewardDescription: "10% off your order",
			ValidityDays:      7,
		},
	}
}

func newTestCouponService(campaigns *MockCampaignRepository, coupons *MockCouponRepository) *couponService {
	svc := NewCouponService(campaigns, coupons, testPromotionConfig(), time.UTC, testLogger())
	return svc.(*couponService)
}

func TestGenerateCoupon_FullProbabilityAlwaysWins(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	coupons := new(MockCouponRepository)
	svc := newTestCouponService(campaigns, coupons)

	campaign := lotteryCampaign(100)
	restaurantID := primitive.NewObjectID()

	// The draw can land anywhere short of 1 and must still win.
	svc.drawFloat = func() float64 { return 0.9999 }
	issuedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	coupons.On("CountByDeviceSince", mock.Anything, restaurantID, "device-1", mock.Anything).Return(int64(0), nil)
	campaigns.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)
	coupons.On("CodeExists", mock.Anything, restaurantID, mock.Anything).Return(false, nil)
	coupons.On("Create", mock.Anything, mock.AnythingOfType("*models.Coupon")).Return(nil)

	result, err := svc.GenerateCoupon(context.Background(), campaign.ID, restaurantID, "device-1")

	assert.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, utils.MsgLotteryWon, result.Message)
	if assert.NotNil(t, result.Coupon) {
		assert.Regexp(t, couponCodePattern, result.Coupon.Code)
		assert.Equal(t, models.CouponStatusActive, result.Coupon.Status)
		assert.Equal(t, models.RewardKindPercentage, result.Coupon.RewardKind)
		assert.Equal(t, int64(10), result.Coupon.RewardValue)
		assert.Equal(t, "10% off your order", result.Coupon.Description)
		assert.Equal(t, issuedAt.AddDate(0, 0, 7), result.Coupon.ValidUntil)
	}
	coupons.AssertExpectations(t)
}

func TestGenerateCoupon_ZeroProbabilityNeverWins(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	coupons := new(MockCouponRepository)
	svc := newTestCouponService(campaigns, coupons)

	campaign := lotteryCampaign(0)
	restaurantID := primitive.NewObjectID()

	svc.drawFloat = func() float64 { return 0 }

	coupons.On("CountByDeviceSince", mock.Anything, restaurantID, "device-1", mock.Anything).Return(int64(0), nil)
	campaigns.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)

	result, err := svc.GenerateCoupon(context.Background(), campaign.ID, restaurantID, "device-1")

	assert.NoError(t, err)
	assert.False(t, result.Won)
	assert.Nil(t, result.Coupon)
	assert.Equal(t, utils.MsgLotteryLost, result.Message)
	coupons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateCoupon_DeviceAtDailyCap(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	coupons := new(MockCouponRepository)
	svc := newTestCouponService(campaigns, coupons)

	restaurantID := primitive.NewObjectID()
	campaignID := primitive.NewObjectID()

	// Would otherwise be a guaranteed win; the cap must mask that.
	svc.drawFloat = func() float64 { return 0 }

	coupons.On("CountByDeviceSince", mock.Anything, restaurantID, "greedy-device", mock.Anything).Return(int64(3), nil)

	result, err := svc.GenerateCoupon(context.Background(), campaignID, restaurantID, "greedy-device")

	assert.NoError(t, err)
	assert.False(t, result.Won)
	assert.Nil(t, result.Coupon)
	assert.Equal(t, utils.MsgLotteryLost, result.Message)
	campaigns.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	coupons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateCoupon_InactiveCampaign(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	coupons := new(MockCouponRepository)
	svc := newTestCouponService(campaigns, coupons)

	campaign := lotteryCampaign(50)
	campaign.IsActive = false
	restaurantID := primitive.NewObjectID()

	coupons.On("CountByDeviceSince", mock.Anything, restaurantID, "device-1", mock.Anything).Return(int64(0), nil)
	campaigns.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)

	result, err := svc.GenerateCoupon(context.Background(), campaign.ID, restaurantID, "device-1")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGenerateCoupon_CampaignNotFound(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	coupons := new(MockCouponRepository)
	svc := newTestCouponService(campaigns, coupons)

	restaurantID := primitive.NewObjectID()
	campaignID := primitive.NewObjectID()

	coupons.On("CountByDeviceSince", mock.Anything, restaurantID, "device-1", mock.Anything).Return(int64(0), nil)
	campaigns.On("GetByID", mock.Anything, campaignID).Return(nil, apperrors.NotFoundf("campaign %s not found", campaignID.Hex()))

	result, err := svc.GenerateCoupon(context.Background(), campaignID, restaurantID, "device-1")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGenerateCoupon_NotALottery(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	coupons := new(MockCouponRepository)
	svc := newTestCouponService(campaigns, coupons)

	campaign := recurringCampaign([]int{5}, "17:00", "20:00")
	restaurantID := primitive.NewObjectID()

	coupons.On("CountByDeviceSince", mock.Anything, restaurantID, "device-1", mock.Anything).Return(int64(0), nil)
	campaigns.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)

	result, err := svc.GenerateCoupon(context.Background(), campaign.ID, restaurantID, "device-1")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGenerateCoupon_CodeCollisionRetries(t *testing.T) {
	campaigns := new(MockCampaignRepository)
	coupons := new(MockCouponRepository)
	svc := newTestCouponService(campaigns, coupons)

	campaign := lotteryCampaign(100)
	restaurantID := primitive.NewObjectID()

	svc.drawFloat = func() float64 { return 0.5 }

	coupons.On("CountByDeviceSince", mock.Anything, restaurantID, "device-1", mock.Anything).Return(int64(0), nil)
	campaigns.On("GetByID", mock.Anything, campaign.ID).Return(campaign, nil)
	coupons.On("CodeExists", mock.Anything, restaurantID, mock.Anything).Return(true, nil).Once()
	coupons.On("CodeExists", mock.Anything, restaurantID, mock.Anything).Return(false, nil).Once()
	coupons.On("Create", mock.Anything, mock.AnythingOfType("*models.Coupon")).Return(nil)

	result, err := svc.GenerateCoupon(context.Background(), campaign.ID, restaurantID, "device-1")

	assert.NoError(t, err)
	assert.True(t, result.Won)
	coupons.AssertNumberOfCalls(t, "CodeExists", 2)
}
