package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"
	"memberhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// NotificationService handles notification business logic
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	memberRepo       *repositories.MemberRepository
	eventRepo        *repositories.EventRepository
	now              func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo *repositories.NotificationRepository, memberRepo *repositories.MemberRepository, eventRepo *repositories.EventRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		memberRepo:       memberRepo,
		eventRepo:        eventRepo,
		now:              time.Now,
	}
}

// SendResult reports how many members a notification reached
type SendResult struct {
	MembersReached int64 `json:"members_reached"`
}

// ListForMember returns the member's notifications, targeted and
// broadcast, newest first
func (s *NotificationService) ListForMember(ctx context.Context, memberID uint, status string, params pagination.Params) ([]*models.Notification, int64, error) {
	if status != "" && !domain.ValidNotificationStatus(status) {
		return nil, 0, domain.ErrInvalidInput
	}
	return s.notificationRepo.ListForMember(ctx, memberID, status, params.Offset, params.Limit)
}

// UnreadCount returns the member's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, memberID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, memberID)
}

// MarkRead marks one notification read
func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	err := s.notificationRepo.MarkRead(ctx, id, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotificationNotFound
	}
	return err
}

// MarkAllRead marks all of the member's notifications read and returns
// how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, memberID uint) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, memberID, s.now())
}

// SendEventReminder sends a reminder notification to every member
// registered for the event
func (s *NotificationService) SendEventReminder(ctx context.Context, eventID uint, memberIDs []uint) (*SendResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	// Without an explicit member list, remind everyone still registered.
	if len(memberIDs) == 0 {
		attendances, err := s.eventRepo.ListAttendance(ctx, eventID)
		if err != nil {
			return nil, err
		}
		for _, att := range attendances {
			if att.Status == string(domain.AttendanceCancelled) {
				continue
			}
			memberIDs = append(memberIDs, att.MemberID)
		}
	}

	now := s.now()
	title := fmt.Sprintf("Reminder: %s", event.Title)
	message := fmt.Sprintf("%s takes place on %s at %s. See you there!",
		event.Title, event.EventDate.Format("2 January 2006"), event.Location)

	notifications := make([]*models.Notification, 0, len(memberIDs))
	for _, id := range memberIDs {
		memberID := id
		notifications = append(notifications, &models.Notification{
			MemberID: &memberID,
			Title:    title,
			Message:  message,
			Type:     string(domain.NotificationEventReminder),
			Status:   string(domain.NotificationUnread),
			SentAt:   &now,
			IsActive: true,
		})
	}

	if len(notifications) > 0 {
		if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
			return nil, err
		}
	}

	return &SendResult{MembersReached: int64(len(notifications))}, nil
}

// SendMembershipExpiry sends an expiry notice to one member. The
// message wording depends on how close the expiry date is.
func (s *NotificationService) SendMembershipExpiry(ctx context.Context, memberID uint) error {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}

	now := s.now()
	days := int(member.ExpiryDate.Sub(now).Hours() / 24)

	var message string
	switch {
	case days <= 0:
		message = "Your membership has expired. Renew now to keep your benefits."
	case days <= 7:
		message = fmt.Sprintf("Your membership expires in %d days. Renew soon to avoid interruption.", days)
	default:
		message = fmt.Sprintf("Your membership expires on %s.", member.ExpiryDate.Format("2 January 2006"))
	}

	notification := &models.Notification{
		MemberID: &member.ID,
		Title:    "Membership Expiry Notice",
		Message:  message,
		Type:     string(domain.NotificationExpiry),
		Status:   string(domain.NotificationUnread),
		SentAt:   &now,
		IsActive: true,
	}
	return s.notificationRepo.Create(ctx, notification)
}

// SendAnnouncement broadcasts an announcement to all active members
func (s *NotificationService) SendAnnouncement(ctx context.Context, title, message string) (*SendResult, error) {
	if title == "" || message == "" {
		return nil, domain.ErrInvalidInput
	}

	now := s.now()
	notification := &models.Notification{
		Title:       title,
		Message:     message,
		Type:        string(domain.NotificationAnnouncement),
		Status:      string(domain.NotificationUnread),
		IsBroadcast: true,
		SentAt:      &now,
		IsActive:    true,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	reached, err := s.memberRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &SendResult{MembersReached: reached}, nil
}
