package services

import (
	"context"
	"fmt"
	"time"

	"tableserve/internal/apperrors"
	"tableserve/internal/config"
	"tableserve/internal/models"
	"tableserve/internal/repositories/interfaces"
	"tableserve/internal/utils"
	"tableserve/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawResult is what the customer sees after a scratch. A rate-limited
// device receives the same losing shape as an unlucky draw.
type DrawResult struct {
	Won     bool           `json:"won"`
	Coupon  *models.Coupon `json:"coupon,omitempty"`
	Message string         `json:"message"`
}

type CouponService interface {
	GenerateCoupon(ctx context.Context, campaignID, restaurantID primitive.ObjectID, deviceID string) (*DrawResult, error)
	GetByDevice(ctx context.Context, restaurantID primitive.ObjectID, deviceID string) ([]*models.Coupon, error)
}

type couponService struct {
	campaigns interfaces.CampaignRepository
	coupons   interfaces.CouponRepository
	cfg       *config.PromotionConfig
	location  *time.Location
	logger    *logger.Logger

	// drawFloat yields a uniform value in [0,1); swapped in tests.
	drawFloat func() float64
	now       func() time.Time
}

func NewCouponService(
	campaigns interfaces.CampaignRepository,
	coupons interfaces.CouponRepository,
	cfg *config.PromotionConfig,
	location *time.Location,
	logger *logger.Logger,
) CouponService {
	return &couponService{
		campaigns: campaigns,
		coupons:   coupons,
		cfg:       cfg,
		location:  location,
		logger:    logger,
		drawFloat: utils.SecureRandomFloat,
		now:       time.Now,
	}
}

// GenerateCoupon runs one lottery draw for a device. The deviceId is an
// opaque client-persisted identifier used only to throttle coupon farming;
// it is never trusted for authorization.
func (s *couponService) GenerateCoupon(ctx context.Context, campaignID, restaurantID primitive.ObjectID, deviceID string) (*DrawResult, error) {
	now := s.now().In(s.location)

	issuedToday, err := s.coupons.CountByDeviceSince(ctx, restaurantID, deviceID, utils.StartOfDay(now))
	if err != nil {
		return nil, err
	}
	if issuedToday >= int64(s.cfg.DailyDeviceCap) {
		s.logger.WithRestaurantID(restaurantID).
			WithField("device_id", deviceID).
			Debug("Device over daily coupon cap")
		return &DrawResult{Won: false, Message: utils.MsgLotteryLost}, nil
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Kind != models.CampaignKindLottery || campaign.Lottery == nil {
		return nil, apperrors.Validationf("campaign %s is not a lottery", campaignID.Hex())
	}
	if !campaign.IsActive {
		return nil, apperrors.Forbiddenf("campaign %s is inactive", campaignID.Hex())
	}

	draw := s.drawFloat() * 100
	if draw >= campaign.Lottery.WinProbability {
		return &DrawResult{Won: false, Message: utils.MsgLotteryLost}, nil
	}

	code, err := s.generateUniqueCode(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		RestaurantID: restaurantID,
		CampaignID:   campaign.ID,
		Code:         code,
		Status:       models.CouponStatusActive,
		RewardKind:   campaign.Lottery.RewardKind,
		RewardValue:  campaign.Lottery.RewardValue,
		Description:  campaign.Lottery.RewardDescription,
		DeviceID:     deviceID,
		ValidUntil:   now.AddDate(0, 0, campaign.Lottery.ValidityDays),
	}

	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.logger.LogCouponEvent(coupon.ID, "issued", map[string]interface{}{
		"campaign_id": campaign.ID.Hex(),
		"code":        coupon.Code,
		"valid_until": coupon.ValidUntil,
	})

	return &DrawResult{Won: true, Coupon: coupon, Message: utils.MsgLotteryWon}, nil
}

// generateUniqueCode draws PREFIX-XXXXX codes until one is unused, bounded so
// an unlikely run of collisions cannot loop forever. The unique index on
// (restaurant_id, code) backstops the remaining race.
func (s *couponService) generateUniqueCode(ctx context.Context, restaurantID primitive.ObjectID) (string, error) {
	for attempt := 0; attempt < s.cfg.CodeMaxAttempts; attempt++ {
		code := fmt.Sprintf("%s-%s", s.cfg.CouponCodePrefix, utils.GenerateCouponSuffix(s.cfg.CouponCodeLength))

		exists, err := s.coupons.CodeExists(ctx, restaurantID, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique coupon code after %d attempts", s.cfg.CodeMaxAttempts)
}

func (s *couponService) GetByDevice(ctx context.Context, restaurantID primitive.ObjectID, deviceID string) ([]*models.Coupon, error) {
	return s.coupons.ListByDevice(ctx, restaurantID, deviceID)
}
