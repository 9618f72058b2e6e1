package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"edupath/internal/scoring"
)

// QuizResult is written once per submission and never updated.
type QuizResult struct {
	BaseModel
	UserID          uuid.UUID                                      `gorm:"type:uuid;not null;index:idx_quiz_results_user_completed,priority:1"`
	Stream          string                                         `gorm:"size:20;not null"`
	Scores          datatypes.JSONType[scoring.ScoreBoard]         `gorm:"not null"`
	Answers         datatypes.JSONType[[]scoring.NormalizedAnswer] `gorm:"not null"`
	Recommendations datatypes.JSONType[scoring.Recommendation]
	CompletedAt     time.Time `gorm:"not null;index:idx_quiz_results_user_completed,priority:2"`
}

// AccountQuizHistory is the per-user append-only list of result ids. Each
// append is its own row, so concurrent submissions never overwrite each other.
type AccountQuizHistory struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID    uuid.UUID `gorm:"type:uuid;not null;index"`
	QuizResultID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AppendedAt   time.Time `gorm:"not null"`
}
