package handlers

import (
	"tableserve/internal/services"
	"tableserve/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// GetMenu returns the menu with live promotion pricing
func (h *MenuHandler) GetMenu(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	menu, err := h.menuService.GetMenu(c.Request.Context(), restaurantID)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Menu retrieved successfully", menu)
}
