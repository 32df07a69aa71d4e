package services

import (
	"context"
	"time"

	"tableserve/internal/models"
	"tableserve/internal/repositories/interfaces"
	"tableserve/internal/utils"
	"tableserve/pkg/logger"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCampaignRepository is a mock implementation of CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

var _ interfaces.CampaignRepository = (*MockCampaignRepository)(nil)

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	args := m.Called(ctx, campaign)
	if args.Error(0) == nil && campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
		campaign.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCampaignRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockCampaignRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	args := m.Called(ctx, restaurantID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) ListActive(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Campaign, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Campaign), args.Error(1)
}

// MockCouponRepository is a mock implementation of CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

var _ interfaces.CouponRepository = (*MockCouponRepository)(nil)

func (m *MockCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	args := m.Called(ctx, coupon)
	if args.Error(0) == nil && coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
		coupon.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockCouponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, restaurantID primitive.ObjectID, code string) (*models.Coupon, error) {
	args := m.Called(ctx, restaurantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) CodeExists(ctx context.Context, restaurantID primitive.ObjectID, code string) (bool, error) {
	args := m.Called(ctx, restaurantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) ListByDevice(ctx context.Context, restaurantID primitive.ObjectID, deviceID string) ([]*models.Coupon, error) {
	args := m.Called(ctx, restaurantID, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) CountByDeviceSince(ctx context.Context, restaurantID primitive.ObjectID, deviceID string, since time.Time) (int64, error) {
	args := m.Called(ctx, restaurantID, deviceID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) Consume(ctx context.Context, id primitive.ObjectID, orderID primitive.ObjectID, usedAt time.Time) error {
	args := m.Called(ctx, id, orderID, usedAt)
	return args.Error(0)
}

func (m *MockCouponRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

var _ interfaces.OrderRepository = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil && order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
		order.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

var _ interfaces.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Product, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

// fakeTxRunner runs the transaction body directly; conflict behavior is
// simulated through the repository mocks.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	return fn(ctx)
}

// captureNotifier records kitchen snapshots for assertions.
type captureNotifier struct {
	restaurantIDs []string
	snapshots     []interface{}
}

func (n *captureNotifier) PublishOrders(restaurantID string, orders interface{}) {
	n.restaurantIDs = append(n.restaurantIDs, restaurantID)
	n.snapshots = append(n.snapshots, orders)
}

func testLogger() *logger.Logger {
	l, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	return l
}
