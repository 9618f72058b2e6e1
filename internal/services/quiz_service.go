package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"edupath/internal/models/db_models"
	"edupath/internal/models/response_models"
	"edupath/internal/repositories"
	"edupath/internal/scoring"
	"edupath/pkg/utils"
)

type QuizServiceInterface interface {
	SubmitQuiz(ctx context.Context, userID string, answers []scoring.Answer) (*response_models.QuizResultResponse, error)
	ListResults(ctx context.Context, userID string) ([]response_models.QuizResultResponse, error)
	GetResult(ctx context.Context, userID, resultID string) (*response_models.QuizResultResponse, error)
	History(ctx context.Context, userID string) ([]string, error)
}

type QuizService struct {
	quizRepo repositories.QuizResultRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewQuizService(quizRepo repositories.QuizResultRepository, log *zap.Logger) QuizServiceInterface {
	return &QuizService{
		quizRepo: quizRepo,
		log:      log,
		now:      time.Now,
	}
}

// SubmitQuiz scores the answers and stores the result together with its
// history entry. Every call creates a new result.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID string, answers []scoring.Answer) (*response_models.QuizResultResponse, error) {
	if len(answers) == 0 {
		return nil, utils.ErrQuizAnswersRequired
	}
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	board, winner, normalized, err := scoring.Score(answers)
	if err != nil {
		if errors.Is(err, scoring.ErrNoAnswers) {
			return nil, utils.ErrQuizAnswersRequired
		}
		return nil, err
	}

	result := &db_models.QuizResult{
		UserID:          owner,
		Stream:          string(winner),
		Scores:          datatypes.NewJSONType(board),
		Answers:         datatypes.NewJSONType(normalized),
		Recommendations: datatypes.NewJSONType(scoring.RecommendationsFor(string(winner))),
		CompletedAt:     s.now().UTC(),
	}

	err = s.quizRepo.WithTx(ctx, func(repo repositories.QuizResultRepository) error {
		id, err := repo.Create(ctx, result)
		if err != nil {
			return fmt.Errorf("create quiz result: %w", err)
		}
		if err := repo.AppendToHistory(ctx, owner, id); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.log.Info("Quiz submitted",
		zap.String("user_id", userID),
		zap.String("result_id", result.ID.String()),
		zap.String("stream", result.Stream),
		zap.Int("answers", len(answers)),
	)

	resp := response_models.ToQuizResultResponse(result)
	return &resp, nil
}

func (s *QuizService) ListResults(ctx context.Context, userID string) ([]response_models.QuizResultResponse, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	results, err := s.quizRepo.ListByUser(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return response_models.ToQuizResultResponses(results), nil
}

// GetResult hides results owned by someone else behind the same not-found
// error as missing ones.
func (s *QuizService) GetResult(ctx context.Context, userID, resultID string) (*response_models.QuizResultResponse, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	id, err := uuid.Parse(resultID)
	if err != nil {
		return nil, utils.ErrQuizResultNotFound
	}

	result, err := s.quizRepo.FindByIDForUser(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if result == nil {
		return nil, utils.ErrQuizResultNotFound
	}

	resp := response_models.ToQuizResultResponse(result)
	return &resp, nil
}

func (s *QuizService) History(ctx context.Context, userID string) ([]string, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	ids, err := s.quizRepo.HistoryIDs(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}
