package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPendingValidation OrderStatus = "pending_validation"
	OrderStatusPreparing         OrderStatus = "preparing"
	OrderStatusReady             OrderStatus = "ready"
	OrderStatusServed            OrderStatus = "served"
	OrderStatusRejected          OrderStatus = "rejected"
)

// orderTransitions is the allow-list for status changes. Rejection is only
// reachable before the kitchen has started preparing.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingValidation: {OrderStatusPreparing, OrderStatusRejected},
	OrderStatusPreparing:         {OrderStatusReady},
	OrderStatusReady:             {OrderStatusServed},
	OrderStatusServed:            {},
	OrderStatusRejected:          {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// OrderItem is an immutable snapshot of a product at order time.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Name      string             `json:"name" bson:"name"`
	UnitPrice int64              `json:"unit_price" bson:"unit_price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Order is created at checkout. TotalAmount always equals Subtotal minus the
// clamped DiscountAmount and is never negative; when CouponID is set, the
// coupon was consumed in the same transaction that created the order.
type Order struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	RestaurantID    primitive.ObjectID  `json:"restaurant_id" bson:"restaurant_id"`
	TableID         string              `json:"table_id" bson:"table_id"`
	TableLabel      string              `json:"table_label" bson:"table_label"`
	Items           []OrderItem         `json:"items" bson:"items"`
	Subtotal        int64               `json:"subtotal" bson:"subtotal"`
	CouponID        *primitive.ObjectID `json:"coupon_id,omitempty" bson:"coupon_id,omitempty"`
	DiscountAmount  int64               `json:"discount_amount" bson:"discount_amount"`
	TotalAmount     int64               `json:"total_amount" bson:"total_amount"`
	Status          OrderStatus         `json:"status" bson:"status"`
	RejectionReason string              `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
	ValidatedAt     *time.Time          `json:"validated_at,omitempty" bson:"validated_at,omitempty"`
	ReadyAt         *time.Time          `json:"ready_at,omitempty" bson:"ready_at,omitempty"`
	ServedAt        *time.Time          `json:"served_at,omitempty" bson:"served_at,omitempty"`
	RejectedAt      *time.Time          `json:"rejected_at,omitempty" bson:"rejected_at,omitempty"`
}
