package config

import (
	"time"
)

type PromotionConfig struct {
	CouponCodePrefix     string        `yaml:"coupon_code_prefix"`
	CouponCodeLength     int           `yaml:"coupon_code_length"`
	DailyDeviceCap       int           `yaml:"daily_device_cap"`
	MinValidityDays      int           `yaml:"min_validity_days"`
	MaxValidityDays      int           `yaml:"max_validity_days"`
	RedemptionMaxRetries int           `yaml:"redemption_max_retries"`
	RedemptionBackoff    time.Duration `yaml:"redemption_backoff"`
	CodeMaxAttempts      int           `yaml:"code_max_attempts"`
	CampaignCacheTTL     time.Duration `yaml:"campaign_cache_ttl"`
}

func loadPromotionConfig() *PromotionConfig {
	return &PromotionConfig{
		CouponCodePrefix:     getEnv("COUPON_CODE_PREFIX", "LUCKY"),
		CouponCodeLength:     getEnvAsInt("COUPON_CODE_LENGTH", 5),
		DailyDeviceCap:       getEnvAsInt("COUPON_DAILY_DEVICE_CAP", 3),
		MinValidityDays:      getEnvAsInt("COUPON_MIN_VALIDITY_DAYS", 1),
		MaxValidityDays:      getEnvAsInt("COUPON_MAX_VALIDITY_DAYS", 90),
		RedemptionMaxRetries: getEnvAsInt("REDEMPTION_MAX_RETRIES", 3),
		RedemptionBackoff:    getEnvAsDuration("REDEMPTION_BACKOFF", 50*time.Millisecond),
		CodeMaxAttempts:      getEnvAsInt("COUPON_CODE_MAX_ATTEMPTS", 5),
		CampaignCacheTTL:     getEnvAsDuration("CAMPAIGN_CACHE_TTL", 5*time.Minute),
	}
}
