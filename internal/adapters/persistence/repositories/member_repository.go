package repositories

import (
	"context"
	"strings"

	"memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MemberFilter holds the optional filters for listing members
type MemberFilter struct {
	Search         string // substring match on name/email/member_id
	ZoneID         uint
	Status         string
	MembershipType string
}

// MemberRepository handles member data access
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create creates a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by primary key with its zone
func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("Zone").
		First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByIdentifier gets a member by email, phone, or member identifier.
// Used by mobile login where the identifier field is free-form.
func (r *MemberRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone = ? OR member_id = ?", identifier, identifier, identifier).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByPhone gets a member by phone number
func (r *MemberRepository) GetByPhone(ctx context.Context, phone string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByEmail checks if a member with the email already exists
func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ExistsByMemberID checks if a member identifier is already taken
func (r *MemberRepository) ExistsByMemberID(ctx context.Context, memberID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count > 0, err
}

// List lists members matching the filter with pagination
func (r *MemberRepository) List(ctx context.Context, filter MemberFilter, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Member{})

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(member_id) LIKE ?",
			search, search, search,
		)
	}
	if filter.ZoneID != 0 {
		query = query.Where("zone_id = ?", filter.ZoneID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MembershipType != "" {
		query = query.Where("membership_type = ?", filter.MembershipType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Zone").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error

	return members, total, err
}

// Update saves all member fields
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// CountActive counts members with an active status and flag
func (r *MemberRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("status = ? AND is_active = ?", "active", true).
		Count(&count).Error
	return count, err
}
