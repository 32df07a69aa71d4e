package services

import (
	"context"
	"errors"
	"time"

	"tableserve/internal/apperrors"
	"tableserve/internal/config"
	"tableserve/internal/models"
	"tableserve/internal/repositories/interfaces"
	"tableserve/internal/validators"
	"tableserve/pkg/database"
	"tableserve/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxRunner runs fn atomically; all repository calls made with the context it
// passes to fn commit or abort together. Implemented by database.MongoDB.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error)
}

// KitchenNotifier receives the full order list for a restaurant after every
// order mutation. Implemented by the websocket handler.
type KitchenNotifier interface {
	PublishOrders(restaurantID string, orders interface{})
}

type OrderService interface {
	CreateOrder(ctx context.Context, restaurantID primitive.ObjectID, req *models.CreateOrderRequest) (*models.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Order, error)
}

type orderService struct {
	orders    interfaces.OrderRepository
	coupons   interfaces.CouponRepository
	products  interfaces.ProductRepository
	tx        TxRunner
	notifier  KitchenNotifier
	validator *validators.OrderValidator
	cfg       *config.PromotionConfig
	logger    *logger.Logger
	now       func() time.Time
}

func NewOrderService(
	orders interfaces.OrderRepository,
	coupons interfaces.CouponRepository,
	products interfaces.ProductRepository,
	tx TxRunner,
	notifier KitchenNotifier,
	validator *validators.OrderValidator,
	cfg *config.PromotionConfig,
	logger *logger.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		coupons:   coupons,
		products:  products,
		tx:        tx,
		notifier:  notifier,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// CalculateDiscount computes the amount a coupon takes off a subtotal. The
// result is always clamped to the subtotal so totals never go negative.
func CalculateDiscount(coupon *models.Coupon, subtotal int64) int64 {
	var discount int64
	switch coupon.RewardKind {
	case models.RewardKindPercentage:
		discount = (subtotal*coupon.RewardValue + 50) / 100
	case models.RewardKindFixedAmount, models.RewardKindFreeItem:
		discount = coupon.RewardValue
	default:
		return 0
	}

	if discount > subtotal {
		return subtotal
	}
	return discount
}

func (s *orderService) CreateOrder(ctx context.Context, restaurantID primitive.ObjectID, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	items, subtotal, err := s.snapshotItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	draft := &models.Order{
		RestaurantID: restaurantID,
		TableID:      req.TableID,
		TableLabel:   req.TableLabel,
		Items:        items,
		Subtotal:     subtotal,
		TotalAmount:  subtotal,
		Status:       models.OrderStatusPendingValidation,
	}

	var order *models.Order
	if req.CouponCode == "" {
		if err := s.orders.Create(ctx, draft); err != nil {
			return nil, err
		}
		order = draft
	} else {
		order, err = s.redeemWithRetry(ctx, restaurantID, req.CouponCode, draft)
		if err != nil {
			return nil, err
		}
	}

	s.logger.LogOrderEvent(order.ID, "created", map[string]interface{}{
		"restaurant_id":   restaurantID.Hex(),
		"table_id":        order.TableID,
		"subtotal":        order.Subtotal,
		"discount_amount": order.DiscountAmount,
		"total_amount":    order.TotalAmount,
	})

	s.publishSnapshot(ctx, restaurantID)

	return order, nil
}

// snapshotItems freezes name and unit price per line so later catalog edits
// cannot change a placed order.
func (s *orderService) snapshotItems(ctx context.Context, reqs []models.OrderItemRequest) ([]models.OrderItem, int64, error) {
	items := make([]models.OrderItem, 0, len(reqs))
	var subtotal int64

	for _, item := range reqs {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
		subtotal += product.Price * int64(item.Quantity)
	}

	return items, subtotal, nil
}

// redeemWithRetry applies a coupon to the draft inside one transaction:
// re-validate, compute the clamped discount, insert the order, and consume
// the coupon with a conditional write. A commit-time race aborts everything
// and retries from the coupon read with exponential backoff; after the
// retries are spent the caller gets ErrRedemptionConflict. No partial state
// is ever observable.
func (s *orderService) redeemWithRetry(ctx context.Context, restaurantID primitive.ObjectID, couponCode string, draft *models.Order) (*models.Order, error) {
	var lastErr error

	for attempt := 0; attempt < s.cfg.RedemptionMaxRetries; attempt++ {
		if attempt > 0 {
			backoff := s.cfg.RedemptionBackoff << uint(attempt-1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, err := s.tx.WithTransaction(ctx, func(txCtx context.Context) (interface{}, error) {
			return s.redeemOnce(txCtx, restaurantID, couponCode, draft)
		})
		if err == nil {
			return result.(*models.Order), nil
		}

		if errors.Is(err, apperrors.ErrRedemptionConflict) || database.IsTransientTxError(err) {
			lastErr = err
			s.logger.WithError(err).Warnf("Redemption attempt %d lost a race, retrying", attempt+1)
			continue
		}

		return nil, err
	}

	s.logger.WithError(lastErr).Error("Redemption retries exhausted")
	return nil, apperrors.Conflictf("coupon redemption conflicted, try again")
}

func (s *orderService) redeemOnce(ctx context.Context, restaurantID primitive.ObjectID, couponCode string, draft *models.Order) (*models.Order, error) {
	coupon, err := s.coupons.GetByCode(ctx, restaurantID, couponCode)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if coupon.Status != models.CouponStatusActive {
		return nil, apperrors.InvalidStatef("coupon %s is %s", coupon.Code, coupon.Status)
	}
	if coupon.IsExpired(now) {
		return nil, apperrors.InvalidStatef("coupon %s expired at %s", coupon.Code, coupon.ValidUntil.Format(time.RFC3339))
	}

	discount := CalculateDiscount(coupon, draft.Subtotal)

	order := *draft
	order.ID = primitive.NewObjectID()
	order.CouponID = &coupon.ID
	order.DiscountAmount = discount
	order.TotalAmount = draft.Subtotal - discount

	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, err
	}

	if err := s.coupons.Consume(ctx, coupon.ID, order.ID, now); err != nil {
		return nil, err
	}

	s.logger.LogCouponEvent(coupon.ID, "redeemed", map[string]interface{}{
		"order_id":        order.ID.Hex(),
		"discount_amount": discount,
	})

	return &order, nil
}

func (s *orderService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := s.validator.ValidateStatusChange(req); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.InvalidStatef("order cannot move from %s to %s", order.Status, req.Status)
	}

	now := s.now()
	updates := map[string]interface{}{"status": req.Status}

	switch req.Status {
	case models.OrderStatusPreparing:
		updates["validated_at"] = now
		order.ValidatedAt = &now
	case models.OrderStatusReady:
		updates["ready_at"] = now
		order.ReadyAt = &now
	case models.OrderStatusServed:
		updates["served_at"] = now
		order.ServedAt = &now
	case models.OrderStatusRejected:
		updates["rejected_at"] = now
		updates["rejection_reason"] = req.RejectionReason
		order.RejectedAt = &now
		order.RejectionReason = req.RejectionReason
	}

	if err := s.orders.UpdateStatus(ctx, id, updates); err != nil {
		return nil, err
	}
	order.Status = req.Status

	s.logger.LogOrderEvent(id, "status_changed", map[string]interface{}{
		"status": req.Status,
	})

	s.publishSnapshot(ctx, order.RestaurantID)

	return order, nil
}

func (s *orderService) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Order, error) {
	return s.orders.ListByRestaurant(ctx, restaurantID)
}

// publishSnapshot ships the full current list to the kitchen room; boards
// re-derive everything from it rather than applying deltas.
func (s *orderService) publishSnapshot(ctx context.Context, restaurantID primitive.ObjectID) {
	if s.notifier == nil {
		return
	}

	orders, err := s.orders.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load orders for kitchen snapshot")
		return
	}

	s.notifier.PublishOrders(restaurantID.Hex(), orders)
}
