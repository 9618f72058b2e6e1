package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "edupath/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountTotalQuizResults(ctx context.Context) (int64, error)
	CountQuizResultsInPeriod(ctx context.Context, start, end time.Time) (int64, error)
	CountColleges(ctx context.Context) (int64, error)
	CountFeaturedColleges(ctx context.Context) (int64, error)

	// Raw timestamps for bucketing
	AccountCreatedTimes(ctx context.Context, start, end time.Time) ([]int64, error)
	QuizCompletedTimes(ctx context.Context, start, end time.Time) ([]time.Time, error)

	// Mixes
	StreamMix(ctx context.Context, start, end time.Time) ([]StreamCountRow, error)
	TopCities(ctx context.Context, limit int) ([]CityRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type StreamCountRow struct {
	Stream string `gorm:"column:stream"`
	Count  int64  `gorm:"column:count"`
}

type CityRow struct {
	City  string `gorm:"column:city"`
	State string `gorm:"column:state"`
	Count int64  `gorm:"column:count"`
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTotalQuizResults(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.QuizResult{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountQuizResultsInPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.QuizResult{}).
		Where("completed_at >= ? AND completed_at <= ?", start, end).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountColleges(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.College{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountFeaturedColleges(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.College{}).Where("is_featured = ?", true).Count(&n).Error
	return n, err
}

// ---------- Series ----------
func (r *dashboardRepository) AccountCreatedTimes(ctx context.Context, start, end time.Time) ([]int64, error) {
	var out []int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Order("created_at").
		Pluck("created_at", &out).Error
	return out, err
}

func (r *dashboardRepository) QuizCompletedTimes(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var out []time.Time
	err := r.db.WithContext(ctx).
		Model(&dbm.QuizResult{}).
		Where("completed_at >= ? AND completed_at <= ?", start, end).
		Order("completed_at").
		Pluck("completed_at", &out).Error
	return out, err
}

// ---------- Mixes ----------
func (r *dashboardRepository) StreamMix(ctx context.Context, start, end time.Time) ([]StreamCountRow, error) {
	var rows []StreamCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.QuizResult{}).
		Select("stream, COUNT(*) AS count").
		Where("completed_at >= ? AND completed_at <= ?", start, end).
		Group("stream").
		Order("count DESC, stream").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) TopCities(ctx context.Context, limit int) ([]CityRow, error) {
	var rows []CityRow
	err := r.db.WithContext(ctx).
		Model(&dbm.College{}).
		Select("city, state, COUNT(*) AS count").
		Where("city <> ''").
		Group("city, state").
		Order("count DESC, city").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
