package repositories

import (
	"context"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/core/domain"

	"gorm.io/gorm"
)

// PaymentRepository handles payment data access
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// ListByMember lists a member's payments with pagination, newest first
func (r *PaymentRepository) ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("member_id = ?", memberID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("payment_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, total, err
}

// RecentCompletedByMember returns a member's latest completed payments
func (r *PaymentRepository) RecentCompletedByMember(ctx context.Context, memberID uint, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, domain.PaymentCompleted).
		Order("payment_date DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// RecentByMember returns a member's latest payments regardless of status
func (r *PaymentRepository) RecentByMember(ctx context.Context, memberID uint, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Order("payment_date DESC").
		Where("member_id = ?", memberID).
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// ListByEvent lists payments linked to an event through its attendance
// rows, along with the summed revenue of completed payments.
func (r *PaymentRepository) ListByEvent(ctx context.Context, eventID uint) ([]*models.Payment, float64, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Joins("JOIN event_attendances ON event_attendances.payment_id = payments.id").
		Where("event_attendances.event_id = ?", eventID).
		Preload("Member").
		Order("payments.payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	var revenue float64
	err = r.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN event_attendances ON event_attendances.payment_id = payments.id").
		Where("event_attendances.event_id = ? AND payments.status = ?", eventID, domain.PaymentCompleted).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&revenue).Error

	return payments, revenue, err
}

// CountByMember returns how many payment rows a member has
func (r *PaymentRepository) CountByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}
