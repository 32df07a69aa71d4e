package validators

import (
	"tableserve/internal/apperrors"
	"tableserve/internal/models"

	"github.com/go-playground/validator/v10"
)

type OrderValidator struct {
	validate *validator.Validate
}

func NewOrderValidator() *OrderValidator {
	return &OrderValidator{validate: validator.New()}
}

func (v *OrderValidator) ValidateCreate(req *models.CreateOrderRequest) error {
	if err := v.validate.Var(req.TableID, "required"); err != nil {
		return apperrors.Validationf("table id is required")
	}
	if len(req.Items) == 0 {
		return apperrors.Validationf("order requires at least one item")
	}
	for _, item := range req.Items {
		if item.ProductID.IsZero() {
			return apperrors.Validationf("item product id is required")
		}
		if item.Quantity < 1 {
			return apperrors.Validationf("item quantity must be at least 1")
		}
	}
	return nil
}

func (v *OrderValidator) ValidateStatusChange(req *models.UpdateOrderStatusRequest) error {
	switch req.Status {
	case models.OrderStatusPreparing, models.OrderStatusReady, models.OrderStatusServed:
		return nil
	case models.OrderStatusRejected:
		if err := v.validate.Var(req.RejectionReason, "required,max=500"); err != nil {
			return apperrors.Validationf("rejection requires a non-empty reason")
		}
		return nil
	case models.OrderStatusPendingValidation:
		return apperrors.Validationf("orders cannot be moved back to pending validation")
	default:
		return apperrors.Validationf("unknown order status %q", req.Status)
	}
}
