package services

import (
	"context"
	"time"

	"tableserve/internal/models"
	"tableserve/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem joins a product with its live promotion pricing.
type MenuItem struct {
	Product *models.Product `json:"product"`
	Pricing ProductPrice    `json:"pricing"`
}

// Menu is what the customer-facing menu renders: products with live prices,
// plus the banner and countdown of the open promotion when there is one.
type Menu struct {
	Items          []MenuItem     `json:"items"`
	BannerText     string         `json:"banner_text,omitempty"`
	PromotionEndIn *time.Duration `json:"promotion_end_in,omitempty"`
}

type MenuService interface {
	GetMenu(ctx context.Context, restaurantID primitive.ObjectID) (*Menu, error)
}

type menuService struct {
	products  interfaces.ProductRepository
	campaigns interfaces.CampaignRepository
	now       func() time.Time
}

func NewMenuService(products interfaces.ProductRepository, campaigns interfaces.CampaignRepository) MenuService {
	return &menuService{
		products:  products,
		campaigns: campaigns,
		now:       time.Now,
	}
}

func (s *menuService) GetMenu(ctx context.Context, restaurantID primitive.ObjectID) (*Menu, error) {
	products, err := s.products.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.campaigns.ListActive(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active := firstOpenPromotion(campaigns, now)

	menu := &Menu{Items: make([]MenuItem, 0, len(products))}
	for _, product := range products {
		menu.Items = append(menu.Items, MenuItem{
			Product: product,
			Pricing: GetProductPrice(product, active),
		})
	}

	if active != nil {
		menu.BannerText = active.Timed.BannerText
		menu.PromotionEndIn = TimeUntilEnd(active, now)
	}

	return menu, nil
}

// firstOpenPromotion picks the newest timed promotion whose window is open.
func firstOpenPromotion(campaigns []*models.Campaign, now time.Time) *models.Campaign {
	for _, campaign := range campaigns {
		if IsPromotionActive(campaign, now) {
			return campaign
		}
	}
	return nil
}
