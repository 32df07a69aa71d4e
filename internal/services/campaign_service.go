package services

import (
	"context"

	"tableserve/internal/models"
	"tableserve/internal/repositories/interfaces"
	"tableserve/internal/utils"
	"tableserve/internal/validators"
	"tableserve/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignService interface {
	Create(ctx context.Context, restaurantID primitive.ObjectID, req *models.CreateCampaignRequest) (*models.Campaign, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateCampaignRequest) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ToggleActive(ctx context.Context, id primitive.ObjectID, active bool) error
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error)
	ListActive(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Campaign, error)
}

type campaignService struct {
	campaigns interfaces.CampaignRepository
	validator *validators.CampaignValidator
	logger    *logger.Logger
}

func NewCampaignService(campaigns interfaces.CampaignRepository, validator *validators.CampaignValidator, logger *logger.Logger) CampaignService {
	return &campaignService{
		campaigns: campaigns,
		validator: validator,
		logger:    logger,
	}
}

func (s *campaignService) Create(ctx context.Context, restaurantID primitive.ObjectID, req *models.CreateCampaignRequest) (*models.Campaign, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	campaign := &models.Campaign{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Kind:         req.Kind,
		Lottery:      req.Lottery,
		Timed:        req.Timed,
		IsActive:     isActive,
	}

	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.logger.WithCampaignID(campaign.ID).WithRestaurantID(restaurantID).
		Infof("Campaign created: kind=%s", campaign.Kind)

	return campaign, nil
}

func (s *campaignService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	return s.campaigns.GetByID(ctx, id)
}

func (s *campaignService) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateCampaignRequest) error {
	existing, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateUpdate(req, existing); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Lottery != nil {
		updates["lottery"] = req.Lottery
	}
	if req.Timed != nil {
		updates["timed"] = req.Timed
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.campaigns.Update(ctx, id, updates); err != nil {
		return err
	}

	s.logger.WithCampaignID(id).Info("Campaign updated")
	return nil
}

// Delete removes the definition outright. Outstanding coupons keep working:
// their reward terms were denormalized at issuance and redemption never
// re-reads the campaign.
func (s *campaignService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithCampaignID(id).Info("Campaign deleted")
	return nil
}

func (s *campaignService) ToggleActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	if err := s.campaigns.SetActive(ctx, id, active); err != nil {
		return err
	}

	s.logger.WithCampaignID(id).Infof("Campaign active toggled: %t", active)
	return nil
}

func (s *campaignService) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Campaign, int64, error) {
	return s.campaigns.ListByRestaurant(ctx, restaurantID, params)
}

func (s *campaignService) ListActive(ctx context.Context, restaurantID primitive.ObjectID) ([]*models.Campaign, error) {
	return s.campaigns.ListActive(ctx, restaurantID)
}
