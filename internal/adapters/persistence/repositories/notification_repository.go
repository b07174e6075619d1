package repositories

import (
	"context"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/core/domain"

	"gorm.io/gorm"
)

// NotificationRepository handles notification data access
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// CreateBatch inserts notifications in one statement (all-or-nothing)
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(notifications).Error
}

// GetByID gets a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListForMember lists notifications visible to a member: rows addressed
// to them plus broadcast rows.
func (r *NotificationRepository) ListForMember(ctx context.Context, memberID uint, status string, offset, limit int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("is_active = ?", true).
		Where("member_id = ? OR is_broadcast = ?", memberID, true)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

// UnreadCount counts unread rows visible to a member
func (r *NotificationRepository) UnreadCount(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("is_active = ? AND status = ?", true, domain.NotificationUnread).
		Where("member_id = ? OR is_broadcast = ?", memberID, true).
		Count(&count).Error
	return count, err
}

// MarkRead marks a single notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint, readAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  domain.NotificationRead,
			"read_at": readAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead marks every unread row visible to a member as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, memberID uint, readAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("status = ?", domain.NotificationUnread).
		Where("member_id = ? OR is_broadcast = ?", memberID, true).
		Updates(map[string]interface{}{
			"status":  domain.NotificationRead,
			"read_at": readAt,
		})
	return result.RowsAffected, result.Error
}
