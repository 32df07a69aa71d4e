package routes

import (
	"tableserve/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupCouponRoutes sets up the lottery draw and the device coupon wallet
func SetupCouponRoutes(r *gin.RouterGroup, couponHandler *handlers.CouponHandler) {
	coupons := r.Group("/restaurants/:restaurant_id/coupons")
	{
		coupons.POST("/generate", couponHandler.GenerateCoupon)
		coupons.GET("", couponHandler.GetDeviceCoupons)
	}
}
