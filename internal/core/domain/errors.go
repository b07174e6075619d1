package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Member errors
var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrMemberInactive    = errors.New("member account is not active")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateMemberID = errors.New("member identifier already in use")
)

// Event errors
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventFull         = errors.New("event has reached maximum attendees")
	ErrAlreadyRegistered = errors.New("member already registered for this event")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)
