package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// CollegeEmbedding only exists on postgres with the vector extension.
type CollegeEmbedding struct {
	CollegeID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Content   string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}
