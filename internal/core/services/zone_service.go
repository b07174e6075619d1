package services

import (
	"context"
	"errors"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"

	"gorm.io/gorm"
)

// ZoneService handles zone business logic
type ZoneService struct {
	zoneRepo *repositories.ZoneRepository
}

// NewZoneService creates a new zone service
func NewZoneService(zoneRepo *repositories.ZoneRepository) *ZoneService {
	return &ZoneService{zoneRepo: zoneRepo}
}

// ZoneInput represents zone create and update input
type ZoneInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

// List returns all zones with their member counts
func (s *ZoneService) List(ctx context.Context) ([]repositories.ZoneStats, error) {
	return s.zoneRepo.ListWithMemberCounts(ctx)
}

// Create creates a zone
func (s *ZoneService) Create(ctx context.Context, input *ZoneInput) (*models.Zone, error) {
	zone := &models.Zone{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Update updates a zone
func (s *ZoneService) Update(ctx context.Context, id uint, input *ZoneInput) (*models.Zone, error) {
	zone, err := s.zoneRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	zone.Name = input.Name
	zone.Description = input.Description
	if err := s.zoneRepo.Update(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}
