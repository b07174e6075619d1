package services

import (
	"context"
	"errors"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"
	"memberhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// EventService handles event and attendance business logic
type EventService struct {
	eventRepo   *repositories.EventRepository
	memberRepo  *repositories.MemberRepository
	paymentRepo *repositories.PaymentRepository
	now         func() time.Time
}

// NewEventService creates a new event service
func NewEventService(eventRepo *repositories.EventRepository, memberRepo *repositories.MemberRepository, paymentRepo *repositories.PaymentRepository) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// CreateEventInput represents admin event creation input
type CreateEventInput struct {
	Title           string     `json:"title" validate:"required,min=3,max=200"`
	Description     string     `json:"description"`
	EventType       string     `json:"event_type" validate:"required"`
	EventDate       time.Time  `json:"event_date" validate:"required"`
	EndDate         *time.Time `json:"end_date"`
	Location        string     `json:"location"`
	MaxAttendees    int        `json:"max_attendees" validate:"gte=0"`
	RegistrationFee float64    `json:"registration_fee" validate:"gte=0"`
	ImageURL        string     `json:"image_url"`
}

// UpdateEventInput represents admin event update input. Nil fields are
// left untouched.
type UpdateEventInput struct {
	Title           *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description     *string    `json:"description"`
	EventType       *string    `json:"event_type"`
	EventDate       *time.Time `json:"event_date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location"`
	MaxAttendees    *int       `json:"max_attendees" validate:"omitempty,gte=0"`
	RegistrationFee *float64   `json:"registration_fee" validate:"omitempty,gte=0"`
	Status          *string    `json:"status"`
	ImageURL        *string    `json:"image_url"`
}

// RecordAttendanceInput marks a registration's attendance outcome
type RecordAttendanceInput struct {
	MemberID uint   `json:"member_id" validate:"required"`
	Status   string `json:"status" validate:"required"`
	Notes    string `json:"notes"`
}

// EventPayments bundles the payments linked to an event with the
// completed revenue total
type EventPayments struct {
	Payments []*models.Payment `json:"payments"`
	Revenue  float64           `json:"revenue"`
}

// List returns events filtered and paginated
func (s *EventService) List(ctx context.Context, filter repositories.EventFilter, params pagination.Params) ([]*models.EventResponse, int64, error) {
	events, total, err := s.eventRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToResponse())
	}
	return responses, total, nil
}

// ListForMembers lists events for the mobile app. Upcoming events are
// cut off at the current time so past ones never show as upcoming.
func (s *EventService) ListForMembers(ctx context.Context, status string, params pagination.Params) ([]*models.EventResponse, int64, error) {
	filter := repositories.EventFilter{Status: status}
	if status == string(domain.EventUpcoming) {
		now := s.now()
		filter.From = &now
	}
	return s.List(ctx, filter, params)
}

// Get returns an event with attendance counts
func (s *EventService) Get(ctx context.Context, id uint) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event.ToResponse(), nil
}

// Create creates an event
func (s *EventService) Create(ctx context.Context, input *CreateEventInput) (*models.EventResponse, error) {
	if !domain.ValidEventType(input.EventType) {
		return nil, domain.ErrInvalidInput
	}
	if input.EndDate != nil && input.EndDate.Before(input.EventDate) {
		return nil, domain.ErrInvalidInput
	}

	event := &models.Event{
		Title:           input.Title,
		Description:     input.Description,
		EventType:       input.EventType,
		EventDate:       input.EventDate,
		EndDate:         input.EndDate,
		Location:        input.Location,
		MaxAttendees:    input.MaxAttendees,
		RegistrationFee: input.RegistrationFee,
		Status:          string(domain.EventUpcoming),
		ImageURL:        input.ImageURL,
		IsActive:        true,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event.ToResponse(), nil
}

// Update partially updates an event
func (s *EventService) Update(ctx context.Context, id uint, input *UpdateEventInput) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.EventType != nil {
		if !domain.ValidEventType(*input.EventType) {
			return nil, domain.ErrInvalidInput
		}
		event.EventType = *input.EventType
	}
	if input.EventDate != nil {
		event.EventDate = *input.EventDate
	}
	if input.EndDate != nil {
		event.EndDate = input.EndDate
	}
	if input.EndDate != nil && event.EndDate.Before(event.EventDate) {
		return nil, domain.ErrInvalidInput
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.MaxAttendees != nil {
		event.MaxAttendees = *input.MaxAttendees
	}
	if input.RegistrationFee != nil {
		event.RegistrationFee = *input.RegistrationFee
	}
	if input.Status != nil {
		if !domain.ValidEventStatus(*input.Status) {
			return nil, domain.ErrInvalidInput
		}
		event.Status = *input.Status
	}
	if input.ImageURL != nil {
		event.ImageURL = *input.ImageURL
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event.ToResponse(), nil
}

// Cancel marks an event cancelled without deleting its records
func (s *EventService) Cancel(ctx context.Context, id uint) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEventNotFound
		}
		return err
	}

	event.Status = string(domain.EventCancelled)
	event.IsActive = false
	return s.eventRepo.Update(ctx, event)
}

// Register registers the member for the event. Capacity and duplicate
// checks run atomically inside the repository transaction.
func (s *EventService) Register(ctx context.Context, eventID, memberID uint) (*models.EventAttendance, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	if member.Status != string(domain.MemberActive) || !member.IsActive {
		return nil, domain.ErrMemberInactive
	}

	return s.eventRepo.RegisterMember(ctx, eventID, memberID, s.now())
}

// RecordAttendance records an attendance outcome. An existing row for
// the (event, member) pair is updated; a walk-in without one gets a new
// row. The attendance timestamp is set only when the status first moves
// to attended.
func (s *EventService) RecordAttendance(ctx context.Context, eventID uint, input *RecordAttendanceInput) (*models.EventAttendance, error) {
	if !domain.ValidAttendanceStatus(input.Status) {
		return nil, domain.ErrInvalidInput
	}

	attendance, err := s.eventRepo.GetAttendance(ctx, eventID, input.MemberID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrEventNotFound
			}
			return nil, err
		}
		if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrMemberNotFound
			}
			return nil, err
		}
		attendance = &models.EventAttendance{
			EventID:          eventID,
			MemberID:         input.MemberID,
			Status:           string(domain.AttendanceRegistered),
			RegistrationDate: s.now(),
		}
	}

	if input.Status == string(domain.AttendanceAttended) && attendance.Status != string(domain.AttendanceAttended) {
		now := s.now()
		attendance.AttendanceDate = &now
	}
	attendance.Status = input.Status
	if input.Notes != "" {
		attendance.Notes = input.Notes
	}

	if err := s.eventRepo.SaveAttendance(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// ListAttendance returns all registrations for an event with member
// details
func (s *EventService) ListAttendance(ctx context.Context, eventID uint) ([]*models.EventAttendance, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return s.eventRepo.ListAttendance(ctx, eventID)
}

// Payments returns the payments linked to an event's registrations
// along with the completed revenue total
func (s *EventService) Payments(ctx context.Context, eventID uint) (*EventPayments, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	payments, revenue, err := s.paymentRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &EventPayments{Payments: payments, Revenue: revenue}, nil
}

// MemberRegistrations returns the member's event registrations
func (s *EventService) MemberRegistrations(ctx context.Context, memberID uint, status string) ([]*models.EventAttendance, error) {
	return s.eventRepo.ListMemberAttendance(ctx, memberID, status)
}
