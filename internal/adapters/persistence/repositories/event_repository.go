package repositories

import (
	"context"
	"errors"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFilter holds the optional filters for listing events
type EventFilter struct {
	Status    string
	EventType string
	From      *time.Time
	To        *time.Time
}

// EventRepository handles event and attendance data access
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID gets an event by ID with attendance and payment detail
func (r *EventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Attendances").
		Preload("Attendances.Member").
		Preload("Attendances.Payment").
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// List lists events matching the filter with pagination.
// Attendance rows are preloaded so callers can compute per-event counts.
func (r *EventRepository) List(ctx context.Context, filter EventFilter, offset, limit int) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Event{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.From != nil {
		query = query.Where("event_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("event_date <= ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Attendances").
		Order("event_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error

	return events, total, err
}

// NextUpcoming returns the soonest upcoming active event after now
func (r *EventRepository) NextUpcoming(ctx context.Context, now time.Time) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_active = ? AND event_date >= ?", domain.EventUpcoming, true, now).
		Order("event_date ASC").
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update saves all event fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// GetAttendance gets the attendance row for an (event, member) pair
func (r *EventRepository) GetAttendance(ctx context.Context, eventID, memberID uint) (*models.EventAttendance, error) {
	var attendance models.EventAttendance
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

// SaveAttendance creates or updates an attendance row
func (r *EventRepository) SaveAttendance(ctx context.Context, attendance *models.EventAttendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

// ListAttendance lists attendance rows for an event with member detail
func (r *EventRepository) ListAttendance(ctx context.Context, eventID uint) ([]*models.EventAttendance, error) {
	var attendances []*models.EventAttendance
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Payment").
		Where("event_id = ?", eventID).
		Order("registration_date ASC").
		Find(&attendances).Error
	return attendances, err
}

// ListMemberAttendance lists a member's attendance rows joined with events
func (r *EventRepository) ListMemberAttendance(ctx context.Context, memberID uint, status string) ([]*models.EventAttendance, error) {
	query := r.db.WithContext(ctx).
		Preload("Event").
		Where("member_id = ?", memberID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var attendances []*models.EventAttendance
	err := query.Order("registration_date DESC").Find(&attendances).Error
	return attendances, err
}

// RegisterMember atomically registers a member for an event. The
// capacity check and the insert run in one transaction holding a row
// lock on the event, so two concurrent registrations cannot both pass
// the check. SQLite (used in tests) has no FOR UPDATE, but its
// single-writer transactions give the same guarantee there.
func (r *EventRepository) RegisterMember(ctx context.Context, eventID, memberID uint, now time.Time) (*models.EventAttendance, error) {
	var attendance *models.EventAttendance

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eventQuery := tx
		if tx.Dialector.Name() == "mysql" {
			eventQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var event models.Event
		if err := eventQuery.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		if !event.IsActive {
			return domain.ErrEventNotFound
		}

		var existing models.EventAttendance
		err := tx.Where("event_id = ? AND member_id = ?", eventID, memberID).
			First(&existing).Error
		if err == nil {
			return domain.ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Capacity counts only "registered" rows; cancellations free a slot.
		if event.MaxAttendees > 0 {
			var registered int64
			if err := tx.Model(&models.EventAttendance{}).
				Where("event_id = ? AND status = ?", eventID, domain.AttendanceRegistered).
				Count(&registered).Error; err != nil {
				return err
			}
			if registered >= int64(event.MaxAttendees) {
				return domain.ErrEventFull
			}
		}

		attendance = &models.EventAttendance{
			EventID:          eventID,
			MemberID:         memberID,
			Status:           domain.AttendanceRegistered,
			RegistrationDate: now,
		}
		return tx.Create(attendance).Error
	})
	if err != nil {
		return nil, err
	}
	return attendance, nil
}
