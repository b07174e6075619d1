package domain

// MembershipType represents a member's tier
type MembershipType string

const (
	MembershipBasic    MembershipType = "basic"
	MembershipPremium  MembershipType = "premium"
	MembershipVIP      MembershipType = "vip"
	MembershipLifetime MembershipType = "lifetime"
)

// ValidMembershipType reports whether t is a known tier
func ValidMembershipType(t string) bool {
	switch MembershipType(t) {
	case MembershipBasic, MembershipPremium, MembershipVIP, MembershipLifetime:
		return true
	}
	return false
}

// IsElevated reports whether the tier grants admin console access.
// This is a placeholder policy carried over from the original system;
// a real role model should replace it before production use.
func (t MembershipType) IsElevated() bool {
	return t == MembershipVIP || t == MembershipLifetime
}

// MemberStatus represents a member's lifecycle status
type MemberStatus string

const (
	MemberActive    MemberStatus = "active"
	MemberInactive  MemberStatus = "inactive"
	MemberSuspended MemberStatus = "suspended"
	MemberExpired   MemberStatus = "expired"
)

// ValidMemberStatus reports whether s is a known member status
func ValidMemberStatus(s string) bool {
	switch MemberStatus(s) {
	case MemberActive, MemberInactive, MemberSuspended, MemberExpired:
		return true
	}
	return false
}

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment types
const (
	PaymentTypeMembership = "membership"
	PaymentTypeRenewal    = "renewal"
	PaymentTypeEvent      = "event"
	PaymentTypeDonation   = "donation"
	PaymentTypeOther      = "other"
)

// ValidPaymentType reports whether s is a known payment type
func ValidPaymentType(s string) bool {
	switch s {
	case PaymentTypeMembership, PaymentTypeRenewal, PaymentTypeEvent, PaymentTypeDonation, PaymentTypeOther:
		return true
	}
	return false
}

// Event statuses
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// ValidEventStatus reports whether s is a known event status
func ValidEventStatus(s string) bool {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted, EventCancelled:
		return true
	}
	return false
}

// Event types
const (
	EventTypeMeeting  = "meeting"
	EventTypeWorkshop = "workshop"
	EventTypeSocial   = "social"
	EventTypeSports   = "sports"
	EventTypeOther    = "other"
)

// ValidEventType reports whether s is a known event type
func ValidEventType(s string) bool {
	switch s {
	case EventTypeMeeting, EventTypeWorkshop, EventTypeSocial, EventTypeSports, EventTypeOther:
		return true
	}
	return false
}

// Attendance statuses
const (
	AttendanceRegistered = "registered"
	AttendanceAttended   = "attended"
	AttendanceNoShow     = "no_show"
	AttendanceCancelled  = "cancelled"
)

// ValidAttendanceStatus reports whether s is a known attendance status
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendanceRegistered, AttendanceAttended, AttendanceNoShow, AttendanceCancelled:
		return true
	}
	return false
}

// Notification statuses
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
	NotificationSent   = "sent"
)

// ValidNotificationStatus reports whether s is a known notification status
func ValidNotificationStatus(s string) bool {
	switch s {
	case NotificationUnread, NotificationRead, NotificationSent:
		return true
	}
	return false
}

// Notification types
const (
	NotificationGeneral       = "general"
	NotificationEventReminder = "event_reminder"
	NotificationExpiry        = "membership_expiry"
	NotificationAnnouncement  = "announcement"
)
