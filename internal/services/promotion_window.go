package services

import (
	"time"

	"tableserve/internal/models"
	"tableserve/internal/utils"
)

// IsPromotionActive reports whether a timed promotion's window is open at
// now. The isActive toggle gates everything: a campaign must be both toggled
// on and inside its window to have effect.
func IsPromotionActive(campaign *models.Campaign, now time.Time) bool {
	if campaign == nil || campaign.Kind != models.CampaignKindTimedPromotion || !campaign.IsActive {
		return false
	}
	cfg := campaign.Timed
	if cfg == nil {
		return false
	}

	switch cfg.Recurrence {
	case models.RecurrenceOneShot:
		if cfg.StartDate == nil || cfg.EndDate == nil {
			return false
		}
		return !now.Before(*cfg.StartDate) && !now.After(*cfg.EndDate)

	case models.RecurrenceRecurring:
		if !containsDay(cfg.DaysOfWeek, int(now.Weekday())) {
			return false
		}
		start, err := utils.ParseClock(cfg.StartTime)
		if err != nil {
			return false
		}
		end, err := utils.ParseClock(cfg.EndTime)
		if err != nil {
			return false
		}
		minute := utils.MinuteOfDay(now)
		return minute >= start && minute <= end

	default:
		return false
	}
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// CalculateDiscountedPrice applies a promotion discount to a unit price.
// Percentage discounts round half away from zero; the result never drops
// below zero.
func CalculateDiscountedPrice(price int64, discount *models.PromotionDiscount) int64 {
	if discount == nil {
		return price
	}

	var discounted int64
	switch discount.Type {
	case models.DiscountTypePercentage:
		discounted = price - (price*discount.Value+50)/100
	case models.DiscountTypeFixed:
		discounted = price - discount.Value
	default:
		return price
	}

	if discounted < 0 {
		return 0
	}
	return discounted
}

// ProductPrice is the live price a menu render shows for one product.
type ProductPrice struct {
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"original_price,omitempty"`
	HasDiscount   bool   `json:"has_discount"`
}

// GetProductPrice computes the effective price of a product under an active
// campaign. Category targeting is honored; a nil or non-timed campaign means
// full price.
func GetProductPrice(product *models.Product, activeCampaign *models.Campaign) ProductPrice {
	full := ProductPrice{Price: product.Price}

	if activeCampaign == nil || activeCampaign.Kind != models.CampaignKindTimedPromotion {
		return full
	}
	cfg := activeCampaign.Timed
	if cfg == nil || cfg.Discount == nil {
		return full
	}
	if !cfg.TargetsCategory(product.CategoryID) {
		return full
	}

	discounted := CalculateDiscountedPrice(product.Price, cfg.Discount)
	if discounted == product.Price {
		return full
	}

	original := product.Price
	return ProductPrice{
		Price:         discounted,
		OriginalPrice: &original,
		HasDiscount:   true,
	}
}

// TimeUntilEnd returns how long the currently-open window stays open, or nil
// when the campaign is not active right now. Display-only; never used for
// gating.
func TimeUntilEnd(campaign *models.Campaign, now time.Time) *time.Duration {
	if !IsPromotionActive(campaign, now) {
		return nil
	}
	cfg := campaign.Timed

	switch cfg.Recurrence {
	case models.RecurrenceOneShot:
		remaining := cfg.EndDate.Sub(now)
		return &remaining

	case models.RecurrenceRecurring:
		end, err := utils.ParseClock(cfg.EndTime)
		if err != nil {
			return nil
		}
		endToday := utils.StartOfDay(now).Add(time.Duration(end) * time.Minute)
		if !endToday.After(now) {
			return nil
		}
		remaining := endToday.Sub(now)
		return &remaining
	}

	return nil
}
