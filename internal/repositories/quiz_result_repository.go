package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupath/internal/models/db_models"
)

type QuizResultRepository interface {
	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(repo QuizResultRepository) error) error

	Create(ctx context.Context, result *db_models.QuizResult) (uuid.UUID, error)
	AppendToHistory(ctx context.Context, userID, resultID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.QuizResult, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*db_models.QuizResult, error)
	HistoryIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type quizResultRepository struct {
	db *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) WithTx(ctx context.Context, fn func(repo QuizResultRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&quizResultRepository{db: tx})
	})
}

func (r *quizResultRepository) Create(ctx context.Context, result *db_models.QuizResult) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return uuid.Nil, err
	}
	return result.ID, nil
}

// AppendToHistory inserts one history row; it never rewrites existing ones.
func (r *quizResultRepository) AppendToHistory(ctx context.Context, userID, resultID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&db_models.AccountQuizHistory{
		AccountID:    userID,
		QuizResultID: resultID,
		AppendedAt:   time.Now(),
	}).Error
}

func (r *quizResultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.QuizResult, error) {
	var results []db_models.QuizResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Order("id DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizResultRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*db_models.QuizResult, error) {
	var result db_models.QuizResult
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *quizResultRepository) HistoryIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.AccountQuizHistory{}).
		Where("account_id = ?", userID).
		Order("id ASC").
		Pluck("quiz_result_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
