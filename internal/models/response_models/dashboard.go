package response_models

import (
	"time"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalAccounts    int64 `json:"total_accounts"`
	NewAccounts      int64 `json:"new_accounts"`
	TotalQuizResults int64 `json:"total_quiz_results"`
	QuizzesInPeriod  int64 `json:"quizzes_in_period"`
	TotalColleges    int64 `json:"total_colleges"`
	FeaturedColleges int64 `json:"featured_colleges"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
	Total  int64         `json:"total"`
}

type StreamMixItem struct {
	Stream  string  `json:"stream"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

type TopCity struct {
	City  string `json:"city"`
	State string `json:"state"`
	Count int64  `json:"count"`
}

type DashboardReport struct {
	Range        TimeRange       `json:"range"`
	KPIs         KPIBlock        `json:"kpis"`
	NewUsers     CountSeries     `json:"new_users"`
	QuizzesTaken CountSeries     `json:"quizzes_taken"`
	StreamMix    []StreamMixItem `json:"stream_mix"`
	TopCities    []TopCity       `json:"top_cities"`
}
