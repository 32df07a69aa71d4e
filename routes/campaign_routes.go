package routes

import (
	"tableserve/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupCampaignRoutes sets up admin campaign CRUD and the customer-facing
// active-campaign listing
func SetupCampaignRoutes(r *gin.RouterGroup, campaignHandler *handlers.CampaignHandler) {
	restaurants := r.Group("/restaurants/:restaurant_id")
	{
		restaurants.POST("/campaigns", campaignHandler.CreateCampaign)
		restaurants.GET("/campaigns", campaignHandler.ListCampaigns)
		restaurants.GET("/campaigns/active", campaignHandler.ListActiveCampaigns)
	}

	campaigns := r.Group("/campaigns")
	{
		campaigns.GET("/:id", campaignHandler.GetCampaign)
		campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
		campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
		campaigns.PUT("/:id/toggle", campaignHandler.ToggleCampaign)
	}
}
