package models

import (
	"time"

	"gorm.io/gorm"
)

// Zone represents zones table, a geographic grouping of members
type Zone struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Members []Member `gorm:"foreignKey:ZoneID" json:"members,omitempty"`
}

func (Zone) TableName() string {
	return "zones"
}

// Member represents members table
type Member struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	MemberID       string     `gorm:"uniqueIndex;size:20;not null" json:"member_id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string     `gorm:"size:255" json:"-"`
	Phone          string     `gorm:"size:20" json:"phone"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth"`
	Address        string     `gorm:"type:text" json:"address"`
	MembershipType string     `gorm:"size:20;default:'basic'" json:"membership_type"`
	Status         string     `gorm:"size:20;default:'active'" json:"status"`
	JoinDate       time.Time  `gorm:"type:date" json:"join_date"`
	ExpiryDate     time.Time  `gorm:"type:date" json:"expiry_date"`
	ZoneID         uint       `gorm:"index;not null" json:"zone_id"`
	ImageURL       string     `gorm:"size:255" json:"image_url"`
	QRCode         string     `gorm:"type:text" json:"qr_code"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Zone        *Zone             `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	Payments    []Payment         `gorm:"foreignKey:MemberID;references:ID" json:"payments,omitempty"`
	Attendances []EventAttendance `gorm:"foreignKey:MemberID;references:ID" json:"attendances,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse is the member shape returned to both consoles
type MemberResponse struct {
	ID             uint       `json:"id"`
	MemberID       string     `json:"member_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Address        string     `json:"address,omitempty"`
	MembershipType string     `json:"membership_type"`
	Status         string     `json:"status"`
	JoinDate       time.Time  `json:"join_date"`
	ExpiryDate     time.Time  `json:"expiry_date"`
	ZoneID         uint       `json:"zone_id"`
	ZoneName       string     `json:"zone_name,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	QRCode         string     `json:"qr_code,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (m *Member) ToResponse() *MemberResponse {
	resp := &MemberResponse{
		ID:             m.ID,
		MemberID:       m.MemberID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		DateOfBirth:    m.DateOfBirth,
		Address:        m.Address,
		MembershipType: m.MembershipType,
		Status:         m.Status,
		JoinDate:       m.JoinDate,
		ExpiryDate:     m.ExpiryDate,
		ZoneID:         m.ZoneID,
		ImageURL:       m.ImageURL,
		QRCode:         m.QRCode,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
	if m.Zone != nil {
		resp.ZoneName = m.Zone.Name
	}
	return resp
}

// MemberSummary is the compact shape used by the mobile endpoints
type MemberSummary struct {
	ID             uint      `json:"id"`
	MemberID       string    `json:"member_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	MembershipType string    `json:"membership_type"`
	Status         string    `json:"status"`
	ExpiryDate     time.Time `json:"expiry_date"`
}

func (m *Member) Summary() *MemberSummary {
	return &MemberSummary{
		ID:             m.ID,
		MemberID:       m.MemberID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		MembershipType: m.MembershipType,
		Status:         m.Status,
		ExpiryDate:     m.ExpiryDate,
	}
}

// Payment represents payments table
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MemberID      uint      `gorm:"index;not null" json:"member_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentType   string    `gorm:"size:30;not null" json:"payment_type"`
	PaymentMethod string    `gorm:"size:30;not null" json:"payment_method"`
	Status        string    `gorm:"size:20;default:'pending'" json:"status"`
	TransactionID *string   `gorm:"uniqueIndex;size:64" json:"transaction_id"`
	Description   string    `gorm:"size:255" json:"description,omitempty"`
	PaymentDate   time.Time `json:"payment_date"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// Event represents events table
type Event struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	EventDate       time.Time  `gorm:"not null" json:"event_date"`
	EndDate         *time.Time `json:"end_date"`
	Location        string     `gorm:"size:255" json:"location"`
	EventType       string     `gorm:"size:30;not null" json:"event_type"`
	MaxAttendees    int        `gorm:"default:0" json:"max_attendees"`
	RegistrationFee float64    `gorm:"type:decimal(10,2);default:0" json:"registration_fee"`
	Status          string     `gorm:"size:20;default:'upcoming'" json:"status"`
	ImageURL        string     `gorm:"size:255" json:"image_url"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Attendances []EventAttendance `gorm:"foreignKey:EventID" json:"attendances,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// EventResponse DTO with computed attendance counts
type EventResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EventDate       time.Time  `json:"event_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Location        string     `json:"location"`
	EventType       string     `json:"event_type"`
	MaxAttendees    int        `json:"max_attendees"`
	RegistrationFee float64    `json:"registration_fee"`
	Status          string     `json:"status"`
	ImageURL        string     `json:"image_url,omitempty"`
	IsActive        bool       `json:"is_active"`
	RegisteredCount int        `json:"registered_count"`
	AttendedCount   int        `json:"attended_count"`
	NoShowCount     int        `json:"no_show_count"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToResponse builds the DTO, computing counts from loaded attendance rows
func (e *Event) ToResponse() *EventResponse {
	resp := &EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		EventDate:       e.EventDate,
		EndDate:         e.EndDate,
		Location:        e.Location,
		EventType:       e.EventType,
		MaxAttendees:    e.MaxAttendees,
		RegistrationFee: e.RegistrationFee,
		Status:          e.Status,
		ImageURL:        e.ImageURL,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
	}
	for _, a := range e.Attendances {
		switch a.Status {
		case "registered":
			resp.RegisteredCount++
		case "attended":
			resp.AttendedCount++
		case "no_show":
			resp.NoShowCount++
		}
	}
	return resp
}

// EventAttendance represents event_attendances table.
// (event_id, member_id) is unique: one row per member per event.
type EventAttendance struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EventID          uint       `gorm:"uniqueIndex:idx_event_member;not null" json:"event_id"`
	MemberID         uint       `gorm:"uniqueIndex:idx_event_member;not null" json:"member_id"`
	Status           string     `gorm:"size:20;default:'registered'" json:"status"`
	RegistrationDate time.Time  `gorm:"autoCreateTime" json:"registration_date"`
	AttendanceDate   *time.Time `json:"attendance_date"`
	PaymentID        *uint      `json:"payment_id"`
	Notes            string     `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Event   *Event   `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Member  *Member  `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Payment *Payment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

func (EventAttendance) TableName() string {
	return "event_attendances"
}

// Notification represents notifications table.
// MemberID is nil for broadcast rows (IsBroadcast true by convention).
type Notification struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	MemberID    *uint      `gorm:"index" json:"member_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	Type        string     `gorm:"size:30;default:'general'" json:"type"`
	Status      string     `gorm:"size:20;default:'unread'" json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	SentAt      *time.Time `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at"`
	IsBroadcast bool       `gorm:"default:false" json:"is_broadcast"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Zone{},
		&Member{},
		&Payment{},
		&Event{},
		&EventAttendance{},
		&Notification{},
	)
}
