package routes

import (
	"tableserve/internal/handlers"
	"tableserve/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up checkout, the order lifecycle, and the live
// kitchen-board subscription
func SetupOrderRoutes(r *gin.RouterGroup, orderHandler *handlers.OrderHandler, wsHandler *websocket.Handler) {
	restaurants := r.Group("/restaurants/:restaurant_id")
	{
		restaurants.POST("/orders", orderHandler.CreateOrder)
		restaurants.GET("/orders", orderHandler.ListOrders)
		restaurants.GET("/kitchen/ws", wsHandler.HandleKitchenBoard)
	}

	orders := r.Group("/orders")
	{
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
	}
}
