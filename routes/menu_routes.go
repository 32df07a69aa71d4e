package routes

import (
	"tableserve/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupMenuRoutes sets up the customer-facing menu with live pricing
func SetupMenuRoutes(r *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	r.GET("/restaurants/:restaurant_id/menu", menuHandler.GetMenu)
}
