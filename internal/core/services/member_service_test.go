package services

import (
	"context"
	"testing"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"
	"memberhub/internal/pkg/pagination"
	"memberhub/internal/pkg/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenewExtendsFromFutureExpiry(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000001", "Alice Doe", "alice@example.com")
	member.ExpiryDate = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(member).Error)

	result, err := svc.Renew(context.Background(), member.ID, "", 500, "credit_card")
	require.NoError(t, err)

	// Expiry is still in the future, so the year extends from it.
	assert.True(t, result.NewExpiryDate.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, string(domain.PaymentCompleted), result.Payment.Status)
	assert.Equal(t, domain.PaymentTypeRenewal, result.Payment.PaymentType)
	assert.Equal(t, 500.0, result.Payment.Amount)
}

func TestRenewExtendsFromNowWhenExpired(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000002", "Bob Stone", "bob@example.com")
	member.ExpiryDate = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	member.Status = string(domain.MemberExpired)
	require.NoError(t, db.Save(member).Error)

	result, err := svc.Renew(context.Background(), member.ID, "", 500, "cash")
	require.NoError(t, err)

	assert.True(t, result.NewExpiryDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, string(domain.MemberActive), result.Member.Status)

	var stored models.Member
	require.NoError(t, db.First(&stored, member.ID).Error)
	assert.Equal(t, string(domain.MemberActive), stored.Status)
}

func TestRenewRecordsPaymentAtomically(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000003", "Cara North", "cara@example.com")

	_, err := svc.Renew(context.Background(), member.ID, "", 750, "bank_transfer")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("member_id = ?", member.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRenewUnknownMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	_, err := svc.Renew(context.Background(), 9999, "", 500, "cash")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestRenewUpgradesTypeAndRederivesCard(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000025", "Rex Shaw", "rex@example.com")
	member.ExpiryDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(member).Error)

	result, err := svc.Renew(context.Background(), member.ID, "premium", 99.99, "card")
	require.NoError(t, err)

	assert.True(t, result.NewExpiryDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 99.99, result.Payment.Amount)

	var stored models.Member
	require.NoError(t, db.First(&stored, member.ID).Error)
	assert.Equal(t, "premium", stored.MembershipType)

	expected, err := qrcode.Generate(qrcode.CardData{
		MemberID:       stored.MemberID,
		Name:           stored.Name,
		MembershipType: "premium",
	})
	require.NoError(t, err)
	assert.Equal(t, expected, stored.QRCode)
}

func TestRenewRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	member := newTestMember(t, db, "MEM000026", "Sky Tran", "sky@example.com")

	_, err := svc.Renew(context.Background(), member.ID, "platinum", 500, "cash")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateMemberRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	newTestMember(t, db, "MEM000004", "Dan West", "dan@example.com")

	_, err := svc.Create(context.Background(), &CreateMemberInput{
		Name:           "Another Dan",
		Email:          "dan@example.com",
		Phone:          "0899999999",
		Password:       "strongpass1",
		MembershipType: string(domain.MembershipBasic),
		ZoneID:         1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestCreateMemberGeneratesCodeAndCard(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	created, err := svc.Create(context.Background(), &CreateMemberInput{
		Name:           "Eve Field",
		Email:          "eve@example.com",
		Phone:          "0877777777",
		Password:       "strongpass1",
		MembershipType: string(domain.MembershipPremium),
		ZoneID:         1,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^MEM\d{6}$`, created.MemberID)
	assert.True(t, created.ExpiryDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NotEmpty(t, created.QRCode)

	// Encoding is deterministic, so the stored code matches a fresh
	// derivation from the same card fields.
	expected, err := qrcode.Generate(qrcode.CardData{
		MemberID:       created.MemberID,
		Name:           "Eve Field",
		MembershipType: string(domain.MembershipPremium),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, created.QRCode)
}

func TestUpdateMemberRederivesCardOnNameChange(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	member := newTestMember(t, db, "MEM000005", "Fay Green", "fay@example.com")
	code, err := qrcode.Generate(qrcode.CardData{
		MemberID:       member.MemberID,
		Name:           member.Name,
		MembershipType: member.MembershipType,
	})
	require.NoError(t, err)
	member.QRCode = code
	require.NoError(t, db.Save(member).Error)

	newName := "Fay Brown"
	updated, err := svc.Update(context.Background(), member.ID, &UpdateMemberInput{Name: &newName})
	require.NoError(t, err)

	expected, err := qrcode.Generate(qrcode.CardData{
		MemberID:       member.MemberID,
		Name:           "Fay Brown",
		MembershipType: member.MembershipType,
	})
	require.NoError(t, err)
	assert.NotEqual(t, code, updated.QRCode)
	assert.Equal(t, expected, updated.QRCode)
}

func TestUpdateMemberKeepsCardOnPhoneChange(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	member := newTestMember(t, db, "MEM000006", "Gil Hart", "gil@example.com")
	code, err := qrcode.Generate(qrcode.CardData{
		MemberID:       member.MemberID,
		Name:           member.Name,
		MembershipType: member.MembershipType,
	})
	require.NoError(t, err)
	member.QRCode = code
	require.NoError(t, db.Save(member).Error)

	newPhone := "0866666666"
	updated, err := svc.Update(context.Background(), member.ID, &UpdateMemberInput{Phone: &newPhone})
	require.NoError(t, err)

	assert.Equal(t, code, updated.QRCode)
	assert.Equal(t, "0866666666", updated.Phone)
}

func TestDisableMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	member := newTestMember(t, db, "MEM000007", "Hal Iris", "hal@example.com")

	require.NoError(t, svc.Disable(context.Background(), member.ID))

	var stored models.Member
	require.NoError(t, db.First(&stored, member.ID).Error)
	assert.False(t, stored.IsActive)
	assert.Equal(t, string(domain.MemberInactive), stored.Status)
}

func TestListMembersSearchIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	newTestMember(t, db, "MEM000008", "John Doe", "john.doe@example.com")
	newTestMember(t, db, "MEM000009", "Jane DOE", "jane.doe@example.com")
	newTestMember(t, db, "MEM000010", "Max Power", "max@example.com")

	members, total, err := svc.List(context.Background(), repositories.MemberFilter{Search: "doe"}, *pagination.New(1, 20))
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	assert.Len(t, members, 2)
}

func TestListMembersFiltersByZoneAndType(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	require.NoError(t, db.Create(&models.Zone{Name: "North"}).Error)

	vip := newTestMember(t, db, "MEM000011", "Ivy King", "ivy@example.com")
	vip.MembershipType = string(domain.MembershipVIP)
	vip.ZoneID = 2
	require.NoError(t, db.Save(vip).Error)

	newTestMember(t, db, "MEM000012", "Jay Long", "jay@example.com")

	members, total, err := svc.List(context.Background(), repositories.MemberFilter{
		ZoneID:         2,
		MembershipType: string(domain.MembershipVIP),
	}, *pagination.New(1, 20))
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, members, 1)
	assert.Equal(t, "MEM000011", members[0].MemberID)
}

func TestGetMemberIncludesRecentPayments(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	member := newTestMember(t, db, "MEM000013", "Kim Lane", "kim@example.com")
	require.NoError(t, db.Create(&models.Payment{
		MemberID:      member.ID,
		Amount:        100,
		PaymentType:   domain.PaymentTypeMembership,
		PaymentMethod: "cash",
		Status:        string(domain.PaymentCompleted),
		PaymentDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}).Error)

	detail, err := svc.Get(context.Background(), member.ID)
	require.NoError(t, err)

	assert.Equal(t, member.MemberID, detail.Member.MemberID)
	require.Len(t, detail.RecentPayments, 1)
	assert.Equal(t, 100.0, detail.RecentPayments[0].Amount)
}

func TestHomeComputesDaysToExpiry(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2024, 12, 22, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000014", "Lee Moss", "lee@example.com")

	home, err := svc.Home(context.Background(), member.ID)
	require.NoError(t, err)

	// Expiry is 2025-01-01, ten days out.
	assert.Equal(t, 10, home.DaysToExpiry)
	assert.Equal(t, "expiring_soon", home.ExpiryStatus)
	assert.Equal(t, member.MemberID, home.Member.MemberID)
	assert.NotEmpty(t, home.QuickActions)
}

func TestHomeClampsExpiredToZeroDays(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000015", "Nia Oaks", "nia@example.com")

	home, err := svc.Home(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, home.DaysToExpiry)
	assert.Equal(t, "expired", home.ExpiryStatus)
}

func TestHomeListsRecentCompletedPayments(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	svc.now = fixedClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000024", "Pat Quinn", "pat@example.com")
	for i := 0; i < 7; i++ {
		payment := &models.Payment{
			MemberID:      member.ID,
			Amount:        float64(10 * (i + 1)),
			PaymentType:   domain.PaymentTypeMembership,
			PaymentMethod: "cash",
			Status:        string(domain.PaymentCompleted),
			PaymentDate:   time.Date(2024, 5, i+1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(payment).Error)
	}

	home, err := svc.Home(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Len(t, home.RecentPayments, 5)
	// Newest first.
	assert.Equal(t, 70.0, home.RecentPayments[0].Amount)
}
