package services

import (
	"context"
	"fmt"
	"time"

	resp "edupath/internal/models/response_models"
	"edupath/internal/repositories"
	"edupath/internal/scoring"
	"edupath/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = time.Now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30)
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

// BucketStart truncates t to the start of its day, ISO week (Monday) or
// month in loc.
func BucketStart(t time.Time, interval string, loc *time.Location) time.Time {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	switch interval {
	case "week":
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return day
	}
}

// bucketize counts timestamps per bucket, keeping buckets in time order.
func bucketize(times []time.Time, interval string, loc *time.Location) resp.CountSeries {
	series := resp.CountSeries{Points: []resp.SeriesPoint{}}
	for _, t := range times {
		b := BucketStart(t, interval, loc)
		n := len(series.Points)
		if n > 0 && series.Points[n-1].Bucket.Equal(b) {
			series.Points[n-1].Value++
		} else {
			series.Points = append(series.Points, resp.SeriesPoint{Bucket: b, Value: 1})
		}
		series.Total++
	}
	return series
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng)
	loc := time.UTC
	if rng.Timezone != "" {
		l, err := time.LoadLocation(rng.Timezone)
		if err != nil {
			return nil, invalid("Unknown timezone %q", rng.Timezone)
		}
		loc = l
	}

	wrap := func(err error) error { return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err) }

	// ---------- Core counts ----------
	var kpis resp.KPIBlock
	var err error
	if kpis.TotalAccounts, err = s.repo.CountTotalAccounts(ctx); err != nil {
		return nil, wrap(err)
	}
	if kpis.NewAccounts, err = s.repo.CountNewAccounts(ctx, rng.Start, rng.End); err != nil {
		return nil, wrap(err)
	}
	if kpis.TotalQuizResults, err = s.repo.CountTotalQuizResults(ctx); err != nil {
		return nil, wrap(err)
	}
	if kpis.QuizzesInPeriod, err = s.repo.CountQuizResultsInPeriod(ctx, rng.Start, rng.End); err != nil {
		return nil, wrap(err)
	}
	if kpis.TotalColleges, err = s.repo.CountColleges(ctx); err != nil {
		return nil, wrap(err)
	}
	if kpis.FeaturedColleges, err = s.repo.CountFeaturedColleges(ctx); err != nil {
		return nil, wrap(err)
	}

	// ---------- Series ----------
	created, err := s.repo.AccountCreatedTimes(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, wrap(err)
	}
	createdAt := make([]time.Time, 0, len(created))
	for _, sec := range created {
		createdAt = append(createdAt, time.Unix(sec, 0))
	}

	completed, err := s.repo.QuizCompletedTimes(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, wrap(err)
	}

	// ---------- Stream mix ----------
	rows, err := s.repo.StreamMix(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, wrap(err)
	}
	counts := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		counts[r.Stream] = r.Count
		total += r.Count
	}
	mix := make([]resp.StreamMixItem, 0, len(scoring.Streams))
	for _, st := range scoring.Streams {
		item := resp.StreamMixItem{Stream: string(st), Count: counts[string(st)]}
		if total > 0 {
			item.Percent = float64(item.Count) * 100.0 / float64(total)
		}
		mix = append(mix, item)
	}

	// ---------- Top cities ----------
	cityRows, err := s.repo.TopCities(ctx, 10)
	if err != nil {
		return nil, wrap(err)
	}
	cities := make([]resp.TopCity, 0, len(cityRows))
	for _, r := range cityRows {
		cities = append(cities, resp.TopCity{City: r.City, State: r.State, Count: r.Count})
	}

	return &resp.DashboardReport{
		Range:        rng,
		KPIs:         kpis,
		NewUsers:     bucketize(createdAt, rng.Interval, loc),
		QuizzesTaken: bucketize(completed, rng.Interval, loc),
		StreamMix:    mix,
		TopCities:    cities,
	}, nil
}
