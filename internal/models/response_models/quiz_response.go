package response_models

import (
	"time"

	"edupath/internal/models/db_models"
	"edupath/internal/scoring"
	"edupath/pkg/utils"
)

type QuizResultResponse struct {
	ID              string                     `json:"id"`
	UserID          string                     `json:"userId"`
	Stream          string                     `json:"stream"`
	Scores          scoring.ScoreBoard         `json:"scores"`
	Answers         []scoring.NormalizedAnswer `json:"answers"`
	Recommendations scoring.Recommendation     `json:"recommendations"`
	CompletedAt     time.Time                  `json:"completedAt"`
	FormattedDate   string                     `json:"formattedDate"`
	CreatedAt       int64                      `json:"createdAt"`
}

func ToQuizResultResponse(r *db_models.QuizResult) QuizResultResponse {
	answers := r.Answers.Data()
	if answers == nil {
		answers = []scoring.NormalizedAnswer{}
	}
	return QuizResultResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		Stream:          r.Stream,
		Scores:          r.Scores.Data(),
		Answers:         answers,
		Recommendations: r.Recommendations.Data(),
		CompletedAt:     r.CompletedAt,
		FormattedDate:   utils.FormatDisplayDate(r.CompletedAt),
		CreatedAt:       r.CreatedAt,
	}
}

func ToQuizResultResponses(results []db_models.QuizResult) []QuizResultResponse {
	out := make([]QuizResultResponse, 0, len(results))
	for i := range results {
		out = append(out, ToQuizResultResponse(&results[i]))
	}
	return out
}
