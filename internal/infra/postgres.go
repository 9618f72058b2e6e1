package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"edupath/internal/config"
	"edupath/internal/logging"
	"edupath/internal/models/db_models"
)

// OpenDatabase connects to postgres, or to a pure-Go sqlite file when the
// url starts with "sqlite:" (local runs and the seed command).
func OpenDatabase(conf config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(conf.URL, "sqlite:"); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(conf.URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormZapLogger(log, conf.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table. The embedding table is only
// created on postgres once the vector extension is available.
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.QuizResult{},
		&db_models.AccountQuizHistory{},
		&db_models.College{},
		&db_models.CollegeCourse{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if !SupportsVectors(db) {
		log.Info("Skipping college embeddings table", zap.String("dialect", db.Dialector.Name()))
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Warn("pgvector extension unavailable, semantic search disabled", zap.Error(err))
		return nil
	}
	if err := db.AutoMigrate(&db_models.CollegeEmbedding{}); err != nil {
		return fmt.Errorf("auto-migrate embeddings: %w", err)
	}
	log.Info("Database migrated")
	return nil
}

func SupportsVectors(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

func CloseDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("Error closing database connection", zap.Error(err))
	} else {
		log.Info("Database connection closed")
	}
}
