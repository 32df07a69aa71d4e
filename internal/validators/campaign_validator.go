package validators

import (
	"tableserve/internal/apperrors"
	"tableserve/internal/models"
	"tableserve/internal/utils"

	"github.com/go-playground/validator/v10"
)

// CampaignValidator checks campaign definitions before any write. All
// failures are ErrValidation; nothing is partially applied.
type CampaignValidator struct {
	validate        *validator.Validate
	minValidityDays int
	maxValidityDays int
}

func NewCampaignValidator(minValidityDays, maxValidityDays int) *CampaignValidator {
	return &CampaignValidator{
		validate:        validator.New(),
		minValidityDays: minValidityDays,
		maxValidityDays: maxValidityDays,
	}
}

func (v *CampaignValidator) ValidateCreate(req *models.CreateCampaignRequest) error {
	if err := v.validate.Var(req.Name, "required,max=100"); err != nil {
		return apperrors.Validationf("name is required and must be at most %d characters", utils.MaxCampaignNameLength)
	}

	switch req.Kind {
	case models.CampaignKindLottery:
		if req.Timed != nil {
			return apperrors.Validationf("lottery campaign cannot carry timed promotion rules")
		}
		return v.validateLottery(req.Lottery)
	case models.CampaignKindTimedPromotion:
		if req.Lottery != nil {
			return apperrors.Validationf("timed promotion cannot carry lottery rules")
		}
		return v.validateTimed(req.Timed)
	default:
		return apperrors.Validationf("unknown campaign kind %q", req.Kind)
	}
}

// ValidateUpdate revalidates the merged definition so a partial edit can
// never leave an invalid campaign behind.
func (v *CampaignValidator) ValidateUpdate(req *models.UpdateCampaignRequest, existing *models.Campaign) error {
	name := existing.Name
	if req.Name != nil {
		name = *req.Name
	}
	if err := v.validate.Var(name, "required,max=100"); err != nil {
		return apperrors.Validationf("name is required and must be at most %d characters", utils.MaxCampaignNameLength)
	}

	switch existing.Kind {
	case models.CampaignKindLottery:
		if req.Timed != nil {
			return apperrors.Validationf("lottery campaign cannot carry timed promotion rules")
		}
		lottery := existing.Lottery
		if req.Lottery != nil {
			lottery = req.Lottery
		}
		return v.validateLottery(lottery)
	case models.CampaignKindTimedPromotion:
		if req.Lottery != nil {
			return apperrors.Validationf("timed promotion cannot carry lottery rules")
		}
		timed := existing.Timed
		if req.Timed != nil {
			timed = req.Timed
		}
		return v.validateTimed(timed)
	default:
		return apperrors.Validationf("unknown campaign kind %q", existing.Kind)
	}
}

func (v *CampaignValidator) validateLottery(cfg *models.LotteryConfig) error {
	if cfg == nil {
		return apperrors.Validationf("lottery configuration is required")
	}
	if cfg.WinProbability < utils.MinWinProbability || cfg.WinProbability > utils.MaxWinProbability {
		return apperrors.Validationf("win probability must be between 0 and 100")
	}

	switch cfg.RewardKind {
	case models.RewardKindPercentage:
		if cfg.RewardValue <= 0 || cfg.RewardValue > 100 {
			return apperrors.Validationf("percentage reward must be between 1 and 100")
		}
	case models.RewardKindFixedAmount, models.RewardKindFreeItem:
		if cfg.RewardValue < 0 {
			return apperrors.Validationf("reward value must be non-negative")
		}
	default:
		return apperrors.Validationf("unknown reward kind %q", cfg.RewardKind)
	}

	if err := v.validate.Var(cfg.RewardDescription, "max=200"); err != nil {
		return apperrors.Validationf("reward description must be at most %d characters", utils.MaxRewardDescriptionLength)
	}
	if cfg.ValidityDays < v.minValidityDays || cfg.ValidityDays > v.maxValidityDays {
		return apperrors.Validationf("validity days must be between %d and %d", v.minValidityDays, v.maxValidityDays)
	}

	return nil
}

func (v *CampaignValidator) validateTimed(cfg *models.TimedPromotionConfig) error {
	if cfg == nil {
		return apperrors.Validationf("timed promotion configuration is required")
	}

	switch cfg.Recurrence {
	case models.RecurrenceOneShot:
		if cfg.StartDate == nil || cfg.EndDate == nil {
			return apperrors.Validationf("one-shot promotion requires start and end dates")
		}
		if cfg.EndDate.Before(*cfg.StartDate) {
			return apperrors.Validationf("end date must not precede start date")
		}
	case models.RecurrenceRecurring:
		if len(cfg.DaysOfWeek) == 0 {
			return apperrors.Validationf("recurring promotion requires at least one day of week")
		}
		for _, day := range cfg.DaysOfWeek {
			if day < 0 || day > 6 {
				return apperrors.Validationf("day of week must be between 0 and 6")
			}
		}
		start, err := utils.ParseClock(cfg.StartTime)
		if err != nil {
			return apperrors.Validationf("start time must be a zero-padded HH:MM value")
		}
		end, err := utils.ParseClock(cfg.EndTime)
		if err != nil {
			return apperrors.Validationf("end time must be a zero-padded HH:MM value")
		}
		// Windows may not cross midnight.
		if end <= start {
			return apperrors.Validationf("end time must be after start time")
		}
	default:
		return apperrors.Validationf("unknown recurrence %q", cfg.Recurrence)
	}

	if cfg.Discount == nil {
		return apperrors.Validationf("discount configuration is required")
	}
	switch cfg.Discount.Type {
	case models.DiscountTypePercentage:
		if cfg.Discount.Value <= 0 || cfg.Discount.Value > 100 {
			return apperrors.Validationf("percentage discount must be between 1 and 100")
		}
	case models.DiscountTypeFixed:
		if cfg.Discount.Value <= 0 {
			return apperrors.Validationf("fixed discount must be positive")
		}
	default:
		return apperrors.Validationf("unknown discount type %q", cfg.Discount.Type)
	}

	if err := v.validate.Var(cfg.BannerText, "required,max=200"); err != nil {
		return apperrors.Validationf("banner text is required and must be at most %d characters", utils.MaxBannerTextLength)
	}

	return nil
}
