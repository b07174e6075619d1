package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"
	"memberhub/internal/pkg/pagination"
	"memberhub/internal/pkg/password"
	"memberhub/internal/pkg/qrcode"

	"gorm.io/gorm"
)

const memberCodePrefix = "MEM"

// MemberService handles member business logic for the admin console
// and the mobile app
type MemberService struct {
	db          *gorm.DB
	memberRepo  *repositories.MemberRepository
	paymentRepo *repositories.PaymentRepository
	eventRepo   *repositories.EventRepository
	now         func() time.Time
}

// NewMemberService creates a new member service
func NewMemberService(db *gorm.DB, memberRepo *repositories.MemberRepository, paymentRepo *repositories.PaymentRepository, eventRepo *repositories.EventRepository) *MemberService {
	return &MemberService{
		db:          db,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
		now:         time.Now,
	}
}

// CreateMemberInput represents admin member creation input
type CreateMemberInput struct {
	Name           string     `json:"name" validate:"required,min=2,max=100"`
	Email          string     `json:"email" validate:"required,email"`
	Phone          string     `json:"phone" validate:"required,min=8,max=20"`
	Password       string     `json:"password" validate:"required,min=8"`
	Address        string     `json:"address"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	MembershipType string     `json:"membership_type" validate:"required"`
	ZoneID         uint       `json:"zone_id" validate:"required"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	ImageURL       string     `json:"image_url"`
}

// UpdateMemberInput represents admin member update input. Nil fields
// are left untouched.
type UpdateMemberInput struct {
	Name           *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Phone          *string    `json:"phone" validate:"omitempty,min=8,max=20"`
	Address        *string    `json:"address"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	MembershipType *string    `json:"membership_type"`
	Status         *string    `json:"status"`
	ZoneID         *uint      `json:"zone_id"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	ImageURL       *string    `json:"image_url"`
}

// MemberDetail bundles a member with their recent payment history for
// the admin detail view
type MemberDetail struct {
	Member         *models.MemberResponse `json:"member"`
	RecentPayments []*models.Payment      `json:"recent_payments"`
}

// HomeData is the mobile home screen payload
type HomeData struct {
	Member         *models.MemberSummary `json:"member"`
	ExpiryStatus   string                `json:"expiry_status"`
	DaysToExpiry   int                   `json:"days_to_expiry"`
	UpcomingEvent  *models.EventResponse `json:"upcoming_event,omitempty"`
	RecentPayments []*models.Payment     `json:"recent_payments"`
	QuickActions   []QuickAction         `json:"quick_actions"`
}

// QuickAction is a static shortcut shown on the home screen.
type QuickAction struct {
	Label string `json:"label"`
	Route string `json:"route"`
	Icon  string `json:"icon"`
}

var homeQuickActions = []QuickAction{
	{Label: "My Card", Route: "/card", Icon: "credit-card"},
	{Label: "Renew Membership", Route: "/membership/renew", Icon: "refresh"},
	{Label: "Events", Route: "/events", Icon: "calendar"},
	{Label: "Payments", Route: "/payments", Icon: "receipt"},
}

// CardData is the mobile membership card payload
type CardData struct {
	Member *models.MemberResponse `json:"member"`
	QRCode string                 `json:"qr_code"`
}

// RenewResult reports the outcome of a membership renewal
type RenewResult struct {
	Member        *models.MemberSummary `json:"member"`
	Payment       *models.Payment       `json:"payment"`
	NewExpiryDate time.Time             `json:"new_expiry_date"`
}

// List returns members filtered and paginated for the admin console
func (s *MemberService) List(ctx context.Context, filter repositories.MemberFilter, params pagination.Params) ([]*models.MemberResponse, int64, error) {
	members, total, err := s.memberRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, members[i].ToResponse())
	}
	return responses, total, nil
}

// Get returns a member with their recent payments
func (s *MemberService) Get(ctx context.Context, id uint) (*MemberDetail, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	payments, err := s.paymentRepo.RecentByMember(ctx, member.ID, 10)
	if err != nil {
		return nil, err
	}

	return &MemberDetail{
		Member:         member.ToResponse(),
		RecentPayments: payments,
	}, nil
}

// Create creates a member from the admin console
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.MemberResponse, error) {
	if !domain.ValidMembershipType(input.MembershipType) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.memberRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	code, err := generateMemberCode(ctx, s.memberRepo)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiry := now.AddDate(1, 0, 0)
	if input.ExpiryDate != nil {
		expiry = *input.ExpiryDate
	}

	member := &models.Member{
		MemberID:       code,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		DateOfBirth:    input.DateOfBirth,
		Password:       hashed,
		MembershipType: input.MembershipType,
		Status:         string(domain.MemberActive),
		JoinDate:       now,
		ExpiryDate:     expiry,
		ZoneID:         input.ZoneID,
		ImageURL:       input.ImageURL,
		IsActive:       true,
	}

	qr, err := qrcode.Generate(qrcode.CardData{
		MemberID:       member.MemberID,
		Name:           member.Name,
		MembershipType: member.MembershipType,
	})
	if err != nil {
		return nil, err
	}
	member.QRCode = qr

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member.ToResponse(), nil
}

// Update partially updates a member. The card code is re-derived when
// any field encoded on it changes.
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*models.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	cardChanged := false

	if input.Name != nil && *input.Name != member.Name {
		member.Name = *input.Name
		cardChanged = true
	}
	if input.Email != nil && *input.Email != member.Email {
		exists, err := s.memberRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEmail
		}
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Address != nil {
		member.Address = *input.Address
	}
	if input.DateOfBirth != nil {
		member.DateOfBirth = input.DateOfBirth
	}
	if input.MembershipType != nil && *input.MembershipType != member.MembershipType {
		if !domain.ValidMembershipType(*input.MembershipType) {
			return nil, domain.ErrInvalidInput
		}
		member.MembershipType = *input.MembershipType
		cardChanged = true
	}
	if input.Status != nil {
		if !domain.ValidMemberStatus(*input.Status) {
			return nil, domain.ErrInvalidInput
		}
		member.Status = *input.Status
	}
	if input.ZoneID != nil {
		member.ZoneID = *input.ZoneID
	}
	if input.ExpiryDate != nil {
		member.ExpiryDate = *input.ExpiryDate
	}
	if input.ImageURL != nil {
		member.ImageURL = *input.ImageURL
	}

	if cardChanged {
		qr, err := qrcode.Generate(qrcode.CardData{
			MemberID:       member.MemberID,
			Name:           member.Name,
			MembershipType: member.MembershipType,
		})
		if err != nil {
			return nil, err
		}
		member.QRCode = qr
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member.ToResponse(), nil
}

// Disable soft-disables a member account
func (s *MemberService) Disable(ctx context.Context, id uint) error {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}

	member.IsActive = false
	member.Status = string(domain.MemberInactive)
	return s.memberRepo.Update(ctx, member)
}

// Home builds the mobile home screen payload
func (s *MemberService) Home(ctx context.Context, memberID uint) (*HomeData, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	now := s.now()
	days := int(member.ExpiryDate.Sub(now).Hours() / 24)
	status := "active"
	switch {
	case days < 0:
		days = 0
		status = "expired"
	case !member.ExpiryDate.After(now):
		status = "expired"
	case days <= 30:
		status = "expiring_soon"
	}

	data := &HomeData{
		Member:       member.Summary(),
		ExpiryStatus: status,
		DaysToExpiry: days,
		QuickActions: homeQuickActions,
	}

	event, err := s.eventRepo.NextUpcoming(ctx, now)
	if err == nil {
		data.UpcomingEvent = event.ToResponse()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payments, err := s.paymentRepo.RecentCompletedByMember(ctx, member.ID, 5)
	if err != nil {
		return nil, err
	}
	data.RecentPayments = payments

	return data, nil
}

// Card returns the membership card payload for the mobile app
func (s *MemberService) Card(ctx context.Context, memberID uint) (*CardData, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	return &CardData{
		Member: member.ToResponse(),
		QRCode: member.QRCode,
	}, nil
}

// Renew extends the membership by one year and records the payment in
// a single transaction. Renewal extends from the current expiry date
// when it is still in the future, otherwise from today.
func (s *MemberService) Renew(ctx context.Context, memberID uint, membershipType string, amount float64, paymentMethod string) (*RenewResult, error) {
	if membershipType != "" && !domain.ValidMembershipType(membershipType) {
		return nil, domain.ErrInvalidInput
	}

	var result RenewResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.First(&member, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemberNotFound
			}
			return err
		}

		now := s.now()
		base := now
		if member.ExpiryDate.After(now) {
			base = member.ExpiryDate
		}
		newExpiry := base.AddDate(1, 0, 0)

		member.ExpiryDate = newExpiry
		member.Status = string(domain.MemberActive)
		if membershipType != "" && membershipType != member.MembershipType {
			member.MembershipType = membershipType
			qr, err := qrcode.Generate(qrcode.CardData{
				MemberID:       member.MemberID,
				Name:           member.Name,
				MembershipType: member.MembershipType,
			})
			if err != nil {
				return err
			}
			member.QRCode = qr
		}
		if err := tx.Save(&member).Error; err != nil {
			return err
		}

		payment := &models.Payment{
			MemberID:      member.ID,
			Amount:        amount,
			PaymentType:   string(domain.PaymentTypeRenewal),
			PaymentMethod: paymentMethod,
			Status:        string(domain.PaymentCompleted),
			PaymentDate:   now,
			Description:   fmt.Sprintf("Membership renewal until %s", newExpiry.Format("2006-01-02")),
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		result.Member = member.Summary()
		result.Payment = payment
		result.NewExpiryDate = newExpiry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// PaymentHistory returns the member's payments, newest first
func (s *MemberService) PaymentHistory(ctx context.Context, memberID uint, params pagination.Params) ([]*models.Payment, int64, error) {
	return s.paymentRepo.ListByMember(ctx, memberID, params.Offset, params.Limit)
}

// generateMemberCode generates a unique member identifier with a
// bounded number of collision retries
func generateMemberCode(ctx context.Context, repo *repositories.MemberRepository) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%s%06d", memberCodePrefix, n.Int64())

		exists, err := repo.ExistsByMemberID(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique member identifier")
}
