package handlers

import (
	"tableserve/internal/models"
	"tableserve/internal/services"
	"tableserve/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder places an order at checkout, redeeming a coupon if one is
// supplied
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	var request models.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), restaurantID, &request)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Order created successfully", order)
}

// GetOrder retrieves order details
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Order retrieved successfully", order)
}

// UpdateOrderStatus advances the order through its lifecycle
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID")
		return
	}

	var request models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, &request)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Order status updated successfully", order)
}

// ListOrders lists a restaurant's orders, newest first
func (h *OrderHandler) ListOrders(c *gin.Context) {
	restaurantID, err := primitive.ObjectIDFromHex(c.Param("restaurant_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restaurant ID")
		return
	}

	orders, err := h.orderService.ListByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		utils.ErrorKindResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Orders retrieved successfully", orders)
}
