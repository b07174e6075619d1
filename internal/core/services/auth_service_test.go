package services

import (
	"context"
	"testing"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/config"
	"memberhub/internal/core/domain"
	"memberhub/internal/pkg/jwt"
	"memberhub/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 24,
		},
	}
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewMemberRepository(db),
		NewOTPService(),
		testConfig(),
	)
}

func newTestMemberWithPassword(t *testing.T, db *gorm.DB, code, email, plain string) *models.Member {
	t.Helper()

	hashed, err := password.Hash(plain)
	require.NoError(t, err)

	member := newTestMember(t, db, code, "Auth Tester", email)
	member.Password = hashed
	require.NoError(t, db.Save(member).Error)
	return member
}

func TestLoginByEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	newTestMemberWithPassword(t, db, "MEM000090", "login@example.com", "realsecret1")

	result, err := svc.Login(context.Background(), &LoginInput{
		Identifier: "login@example.com",
		Password:   "realsecret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := jwt.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "MEM000090", claims.MemberCode)
}

func TestLoginByMemberCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	newTestMemberWithPassword(t, db, "MEM000091", "code@example.com", "realsecret1")

	result, err := svc.Login(context.Background(), &LoginInput{
		Identifier: "MEM000091",
		Password:   "realsecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "MEM000091", result.Member.MemberID)
}

func TestLoginAcceptsDevBypassPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	newTestMemberWithPassword(t, db, "MEM000092", "bypass@example.com", "realsecret1")

	// The fixed development password works regardless of the stored hash.
	result, err := svc.Login(context.Background(), &LoginInput{
		Identifier: "bypass@example.com",
		Password:   "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	newTestMemberWithPassword(t, db, "MEM000093", "wrong@example.com", "realsecret1")

	_, err := svc.Login(context.Background(), &LoginInput{
		Identifier: "wrong@example.com",
		Password:   "notthepassword",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownIdentifier(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Login(context.Background(), &LoginInput{
		Identifier: "nobody@example.com",
		Password:   "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	member := newTestMemberWithPassword(t, db, "MEM000094", "inactive@example.com", "realsecret1")
	member.IsActive = false
	require.NoError(t, db.Save(member).Error)

	_, err := svc.Login(context.Background(), &LoginInput{
		Identifier: "inactive@example.com",
		Password:   "realsecret1",
	})
	assert.ErrorIs(t, err, domain.ErrMemberInactive)
}

func TestRegisterAssignsDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	svc.now = fixedClock(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	result, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "New Member",
		Email:    "new@example.com",
		Phone:    "0855555555",
		Password: "strongpass1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.MembershipBasic), result.Member.MembershipType)
	assert.Equal(t, string(domain.MemberActive), result.Member.Status)
	assert.True(t, result.Member.ExpiryDate.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))

	var stored models.Member
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&stored).Error)
	assert.Equal(t, uint(DefaultZoneID), stored.ZoneID)
	assert.NotEmpty(t, stored.QRCode)
	assert.NotEqual(t, "strongpass1", stored.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	newTestMember(t, db, "MEM000095", "Old Member", "taken@example.com")

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "New Member",
		Email:    "taken@example.com",
		Phone:    "0855555556",
		Password: "strongpass1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSendOTPEchoesCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	newTestMember(t, db, "MEM000096", "OTP User", "otp@example.com")

	otp, err := svc.SendOTP(context.Background(), "0812345678")
	require.NoError(t, err)
	assert.Equal(t, "1234", otp)
}

func TestSendOTPUnknownPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.SendOTP(context.Background(), "0000000000")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestOTPLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	newTestMember(t, db, "MEM000097", "OTP Login", "otplogin@example.com")

	result, err := svc.OTPLogin(context.Background(), "0812345678", "1234")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.OTPLogin(context.Background(), "0812345678", "9999")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
