package utils

// Application Constants
const (
	AppName    = "TableServe"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Campaign Constants
	MaxCampaignNameLength      = 100
	MaxRewardDescriptionLength = 200
	MaxBannerTextLength        = 200
	MinWinProbability          = 0.0
	MaxWinProbability          = 100.0

	// Coupon Constants
	CouponCodeAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	MaxRejectionReasonSize = 500

	// Response status values
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)

// Customer-facing lottery messages. A rate-limited device gets the same
// consolation text as a losing draw so the cap is not observable.
const (
	MsgLotteryWon  = "Congratulations, you won!"
	MsgLotteryLost = "Not this time. Come back tomorrow!"
)
