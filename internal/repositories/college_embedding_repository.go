package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edupath/internal/models/db_models"
)

type ScoredCollege struct {
	CollegeID  uuid.UUID
	Similarity float64
}

type CollegeEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *db_models.CollegeEmbedding) error
	Nearest(ctx context.Context, vector pgvector.Vector, minSimilarity float64, limit int) ([]ScoredCollege, error)
	Delete(ctx context.Context, collegeID uuid.UUID) error
}

type collegeEmbeddingRepository struct {
	db *gorm.DB
}

func NewCollegeEmbeddingRepository(db *gorm.DB) CollegeEmbeddingRepository {
	return &collegeEmbeddingRepository{db: db}
}

func (r *collegeEmbeddingRepository) Upsert(ctx context.Context, embedding *db_models.CollegeEmbedding) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "college_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "embedding", "updated_at"}),
	}).Create(embedding).Error
}

// Nearest ranks by cosine distance; similarity is 1 - distance.
func (r *collegeEmbeddingRepository) Nearest(ctx context.Context, vector pgvector.Vector, minSimilarity float64, limit int) ([]ScoredCollege, error) {
	var results []ScoredCollege

	query := `
        SELECT e.college_id, (1 - (e.embedding <=> ?)) AS similarity
        FROM college_embeddings e
        JOIN colleges c ON c.id = e.college_id AND c.deleted_at IS NULL
        WHERE (1 - (e.embedding <=> ?)) > ?
        ORDER BY e.embedding <=> ?
        LIMIT ?
    `

	err := r.db.WithContext(ctx).Raw(query, vector, vector, minSimilarity, vector, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *collegeEmbeddingRepository) Delete(ctx context.Context, collegeID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.CollegeEmbedding{}, "college_id = ?", collegeID).Error
}
