package handlers

import (
	"tableserve/internal/models"
	"tableserve/internal/services"
	"tableserve/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// CreateCampaign creates a campaign for a restaurant
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	var request models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), restaurantID, &request)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Campaign created successfully", campaign)
}

// GetCampaign retrieves a single campaign
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	campaign, err := h.campaignService.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign retrieved successfully", campaign)
}

// ListCampaigns lists a restaurant's campaigns, newest first
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	params := utils.GetPaginationParams(c)

	campaigns, total, err := h.campaignService.ListByRestaurant(c.Request.Context(), restaurantID, params)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.BuildPaginationMeta(params, total),
		Count:      len(campaigns),
	}
	utils.SuccessResponseWithMeta(c, "Campaigns retrieved successfully", campaigns, meta)
}

// ListActiveCampaigns lists only campaigns whose toggle is on
func (h *CampaignHandler) ListActiveCampaigns(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	campaigns, err := h.campaignService.ListActive(c.Request.Context(), restaurantID)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Active campaigns retrieved successfully", campaigns)
}

// UpdateCampaign applies a partial edit
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	var request models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.campaignService.Update(c.Request.Context(), campaignID, &request); err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign updated successfully", nil)
}

// DeleteCampaign removes a campaign
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), campaignID); err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign deleted successfully", nil)
}

// ToggleCampaign flips the isActive switch
func (h *CampaignHandler) ToggleCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid campaign ID")
		return
	}

	var request models.ToggleCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.campaignService.ToggleActive(c.Request.Context(), campaignID, *request.IsActive); err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign toggled successfully", nil)
}
