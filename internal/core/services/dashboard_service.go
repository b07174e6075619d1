package services

import (
	"context"
	"time"

	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates statistics for the admin console
type DashboardService struct {
	db       *gorm.DB
	zoneRepo *repositories.ZoneRepository
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, zoneRepo *repositories.ZoneRepository) *DashboardService {
	return &DashboardService{
		db:       db,
		zoneRepo: zoneRepo,
		now:      time.Now,
	}
}

// DashboardStats is the admin dashboard summary payload
type DashboardStats struct {
	TotalMembers    int64                    `json:"total_members"`
	ActiveMembers   int64                    `json:"active_members"`
	ExpiringSoon    int64                    `json:"expiring_soon"`
	TotalEvents     int64                    `json:"total_events"`
	UpcomingEvents  int64                    `json:"upcoming_events"`
	RecentPayments  []*models.Payment        `json:"recent_payments"`
	MembershipTypes []TypeCount              `json:"membership_types"`
	MonthlyGrowth   []MonthlyGrowthPoint     `json:"monthly_growth"`
	ZoneStats       []repositories.ZoneStats `json:"zone_stats"`
}

// TypeCount is a membership tier histogram bucket
type TypeCount struct {
	MembershipType string `json:"membership_type"`
	Count          int64  `json:"count"`
}

// MonthlyGrowthPoint holds one month of new members and revenue
type MonthlyGrowthPoint struct {
	Month      string  `json:"month"`
	NewMembers int64   `json:"new_members"`
	Revenue    float64 `json:"revenue"`
}

// RevenueStats is the admin revenue breakdown payload
type RevenueStats struct {
	CurrentMonth float64          `json:"current_month"`
	PriorMonth   float64          `json:"prior_month"`
	ByType       []RevenueByType  `json:"by_type"`
	Monthly      []MonthlyRevenue `json:"monthly"`
}

// RevenueByType is completed revenue grouped by payment type
type RevenueByType struct {
	PaymentType string  `json:"payment_type"`
	Total       float64 `json:"total"`
}

// MonthlyRevenue holds one month of completed revenue
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Stats builds the dashboard summary
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	stats := &DashboardStats{}

	if err := db.Model(&models.Member{}).Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Member{}).
		Where("status = ? AND is_active = ?", string(domain.MemberActive), true).
		Count(&stats.ActiveMembers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Member{}).
		Where("is_active = ? AND expiry_date BETWEEN ? AND ?", true, now, now.AddDate(0, 0, 30)).
		Count(&stats.ExpiringSoon).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Event{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Event{}).
		Where("is_active = ? AND event_date > ?", true, now).
		Count(&stats.UpcomingEvents).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Member").
		Where("status = ? AND payment_date >= ?", string(domain.PaymentCompleted), now.AddDate(0, 0, -30)).
		Order("payment_date DESC").
		Limit(10).
		Find(&stats.RecentPayments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Member{}).
		Select("membership_type, COUNT(*) as count").
		Where("is_active = ?", true).
		Group("membership_type").
		Scan(&stats.MembershipTypes).Error; err != nil {
		return nil, err
	}

	growth, err := s.monthlyGrowth(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.MonthlyGrowth = growth

	zones, err := s.zoneRepo.ListWithMemberCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats.ZoneStats = zones

	return stats, nil
}

// Revenue builds the revenue breakdown
func (s *DashboardService) Revenue(ctx context.Context) (*RevenueStats, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	stats := &RevenueStats{}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	priorStart := monthStart.AddDate(0, -1, 0)

	current, err := s.completedRevenueBetween(db, monthStart, now)
	if err != nil {
		return nil, err
	}
	stats.CurrentMonth = current

	prior, err := s.completedRevenueBetween(db, priorStart, monthStart)
	if err != nil {
		return nil, err
	}
	stats.PriorMonth = prior

	if err := db.Model(&models.Payment{}).
		Select("payment_type, COALESCE(SUM(amount), 0) as total").
		Where("status = ?", string(domain.PaymentCompleted)).
		Group("payment_type").
		Scan(&stats.ByType).Error; err != nil {
		return nil, err
	}

	// Six whole months ending with the current one.
	for i := 5; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		revenue, err := s.completedRevenueBetween(db, start, end)
		if err != nil {
			return nil, err
		}
		stats.Monthly = append(stats.Monthly, MonthlyRevenue{
			Month:   start.Format("2006-01"),
			Revenue: revenue,
		})
	}

	return stats, nil
}

// monthlyGrowth returns new member and revenue series for the twelve
// whole months ending with the current one
func (s *DashboardService) monthlyGrowth(ctx context.Context, now time.Time) ([]MonthlyGrowthPoint, error) {
	db := s.db.WithContext(ctx)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	points := make([]MonthlyGrowthPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var newMembers int64
		if err := db.Model(&models.Member{}).
			Where("join_date >= ? AND join_date < ?", start, end).
			Count(&newMembers).Error; err != nil {
			return nil, err
		}

		revenue, err := s.completedRevenueBetween(db, start, end)
		if err != nil {
			return nil, err
		}

		points = append(points, MonthlyGrowthPoint{
			Month:      start.Format("2006-01"),
			NewMembers: newMembers,
			Revenue:    revenue,
		})
	}
	return points, nil
}

func (s *DashboardService) completedRevenueBetween(db *gorm.DB, start, end time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ? AND payment_date >= ? AND payment_date < ?", string(domain.PaymentCompleted), start, end).
		Scan(&total).Error
	return total, err
}
