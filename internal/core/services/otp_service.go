package services

import (
	"memberhub/internal/core/domain"
)

// mockOTP is the only code the service accepts. The original system
// shipped with a fixed code and no SMS gateway wired up.
// TODO: integrate a real SMS provider and per-request codes before launch.
const mockOTP = "1234"

// OTPService issues and verifies one-time passwords. This is a mock
// implementation with a fixed code.
type OTPService struct{}

// NewOTPService creates a new OTP service
func NewOTPService() *OTPService {
	return &OTPService{}
}

// Generate returns the OTP for the phone number
func (s *OTPService) Generate(phone string) string {
	return mockOTP
}

// Verify checks the OTP for the phone number
func (s *OTPService) Verify(phone, otp string) error {
	if otp != mockOTP {
		return domain.ErrInvalidCredentials
	}
	return nil
}
