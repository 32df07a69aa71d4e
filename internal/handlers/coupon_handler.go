package handlers

import (
	"tableserve/internal/models"
	"tableserve/internal/services"
	"tableserve/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// GenerateCoupon runs one lottery draw for the calling device
func (h *CouponHandler) GenerateCoupon(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	var request models.GenerateCouponRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.couponService.GenerateCoupon(c.Request.Context(), request.CampaignID, restaurantID, request.DeviceID)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result.Message, result)
}

// GetDeviceCoupons returns the device's coupon wallet
func (h *CouponHandler) GetDeviceCoupons(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	deviceID := c.Query("device_id")
	if deviceID == "" {
		utils.BadRequestResponse(c, "device_id is required")
		return
	}

	coupons, err := h.couponService.GetByDevice(c.Request.Context(), restaurantID, deviceID)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupons retrieved successfully", coupons)
}
