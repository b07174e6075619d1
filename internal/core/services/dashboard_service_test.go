package services

import (
	"context"
	"testing"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(db, repositories.NewZoneRepository(db))
}

func seedPayment(t *testing.T, db *gorm.DB, memberID uint, amount float64, paymentType, status string, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Payment{
		MemberID:      memberID,
		Amount:        amount,
		PaymentType:   paymentType,
		PaymentMethod: "cash",
		Status:        status,
		PaymentDate:   date,
	}).Error)
}

func TestDashboardStatsCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := newDashboardService(db)
	svc.now = fixedClock(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	active := newTestMember(t, db, "MEM000100", "Oda Pike", "oda@example.com")

	expiring := newTestMember(t, db, "MEM000101", "Pia Quon", "pia@example.com")
	expiring.ExpiryDate = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(expiring).Error)

	inactive := newTestMember(t, db, "MEM000102", "Quin Roth", "quin@example.com")
	inactive.IsActive = false
	inactive.Status = string(domain.MemberInactive)
	require.NoError(t, db.Save(inactive).Error)

	newTestEvent(t, db, "Future Event", 0)
	past := newTestEvent(t, db, "Past Event", 0)
	past.EventDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(past).Error)

	seedPayment(t, db, active.ID, 300, domain.PaymentTypeMembership, string(domain.PaymentCompleted),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	// Pending payments stay out of the recent list.
	seedPayment(t, db, active.ID, 50, domain.PaymentTypeDonation, string(domain.PaymentPending),
		time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalMembers)
	assert.Equal(t, int64(2), stats.ActiveMembers)
	assert.Equal(t, int64(1), stats.ExpiringSoon)
	assert.Equal(t, int64(2), stats.TotalEvents)
	assert.Equal(t, int64(1), stats.UpcomingEvents)
	require.Len(t, stats.RecentPayments, 1)
	assert.Equal(t, 300.0, stats.RecentPayments[0].Amount)
	assert.Len(t, stats.MonthlyGrowth, 12)
	require.NotEmpty(t, stats.ZoneStats)
}

func TestDashboardMembershipTypeHistogram(t *testing.T) {
	db := setupTestDB(t)
	svc := newDashboardService(db)
	svc.now = fixedClock(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	newTestMember(t, db, "MEM000103", "Raj Sen", "raj@example.com")
	newTestMember(t, db, "MEM000104", "Siv Tran", "siv@example.com")
	vip := newTestMember(t, db, "MEM000105", "Tom Usher", "tom@example.com")
	vip.MembershipType = string(domain.MembershipVIP)
	require.NoError(t, db.Save(vip).Error)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	buckets := make(map[string]int64, len(stats.MembershipTypes))
	for _, tc := range stats.MembershipTypes {
		buckets[tc.MembershipType] = tc.Count
	}
	assert.Equal(t, int64(2), buckets[string(domain.MembershipBasic)])
	assert.Equal(t, int64(1), buckets[string(domain.MembershipVIP)])
}

func TestRevenueMonthWindows(t *testing.T) {
	db := setupTestDB(t)
	svc := newDashboardService(db)
	svc.now = fixedClock(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	member := newTestMember(t, db, "MEM000106", "Una Veld", "una@example.com")

	// Current month, prior month, and one outside both windows.
	seedPayment(t, db, member.ID, 400, domain.PaymentTypeRenewal, string(domain.PaymentCompleted),
		time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	seedPayment(t, db, member.ID, 250, domain.PaymentTypeEvent, string(domain.PaymentCompleted),
		time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))
	seedPayment(t, db, member.ID, 999, domain.PaymentTypeMembership, string(domain.PaymentCompleted),
		time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))
	// Failed payments never count toward revenue.
	seedPayment(t, db, member.ID, 100, domain.PaymentTypeRenewal, string(domain.PaymentFailed),
		time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC))

	revenue, err := svc.Revenue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 400.0, revenue.CurrentMonth)
	assert.Equal(t, 250.0, revenue.PriorMonth)
	require.Len(t, revenue.Monthly, 6)
	assert.Equal(t, "2024-06", revenue.Monthly[5].Month)
	assert.Equal(t, 400.0, revenue.Monthly[5].Revenue)
	assert.Equal(t, "2024-05", revenue.Monthly[4].Month)
	assert.Equal(t, 250.0, revenue.Monthly[4].Revenue)

	byType := make(map[string]float64, len(revenue.ByType))
	for _, rt := range revenue.ByType {
		byType[rt.PaymentType] = rt.Total
	}
	assert.Equal(t, 400.0, byType[domain.PaymentTypeRenewal])
	assert.Equal(t, 250.0, byType[domain.PaymentTypeEvent])
	assert.Equal(t, 999.0, byType[domain.PaymentTypeMembership])
}

func TestMonthlyGrowthTracksJoins(t *testing.T) {
	db := setupTestDB(t)
	svc := newDashboardService(db)
	svc.now = fixedClock(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	early := newTestMember(t, db, "MEM000107", "Val Wren", "val@example.com")
	early.JoinDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(early).Error)

	late := newTestMember(t, db, "MEM000108", "Wyn Xiao", "wyn@example.com")
	late.JoinDate = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(late).Error)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	byMonth := make(map[string]int64, len(stats.MonthlyGrowth))
	for _, p := range stats.MonthlyGrowth {
		byMonth[p.Month] = p.NewMembers
	}
	assert.Equal(t, int64(1), byMonth["2024-03"])
	assert.Equal(t, int64(1), byMonth["2024-06"])
}
