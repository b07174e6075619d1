package repositories

import (
	"context"

	"memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ZoneStats holds a zone with its member count
type ZoneStats struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int64  `json:"member_count"`
}

// ZoneRepository handles zone data access
type ZoneRepository struct {
	db *gorm.DB
}

// NewZoneRepository creates a new zone repository
func NewZoneRepository(db *gorm.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// Create creates a new zone
func (r *ZoneRepository) Create(ctx context.Context, zone *models.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

// GetByID gets a zone by ID
func (r *ZoneRepository) GetByID(ctx context.Context, id uint) (*models.Zone, error) {
	var zone models.Zone
	err := r.db.WithContext(ctx).First(&zone, id).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

// List lists all zones
func (r *ZoneRepository) List(ctx context.Context) ([]*models.Zone, error) {
	var zones []*models.Zone
	err := r.db.WithContext(ctx).Order("id ASC").Find(&zones).Error
	return zones, err
}

// ListWithMemberCounts lists zones with member counts, sorted descending
func (r *ZoneRepository) ListWithMemberCounts(ctx context.Context) ([]ZoneStats, error) {
	var stats []ZoneStats
	err := r.db.WithContext(ctx).Table("zones").
		Select("zones.id, zones.name, zones.description, COUNT(members.id) as member_count").
		Joins("LEFT JOIN members ON members.zone_id = zones.id AND members.is_active = ?", true).
		Where("zones.deleted_at IS NULL").
		Group("zones.id, zones.name, zones.description").
		Order("member_count DESC").
		Scan(&stats).Error
	return stats, err
}

// Update saves all zone fields
func (r *ZoneRepository) Update(ctx context.Context, zone *models.Zone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}
