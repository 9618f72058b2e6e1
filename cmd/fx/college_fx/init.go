package college_fx

import (
	"path/filepath"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edupath/internal/config"
	"edupath/internal/infra"
	"edupath/internal/models/db_models"
	"edupath/internal/repositories"
	"edupath/internal/services"
	"edupath/pkg/storage"
	"edupath/pkg/utils"
)

var Module = fx.Provide(
	provideCollegeRepo,
	provideEmbeddingRepo,
	provideEmbedder,
	provideBlobStore,
	provideCollegeService,
)

func provideCollegeRepo(db *gorm.DB) repositories.CollegeRepository {
	return repositories.NewCollegeRepository(db)
}

// provideEmbeddingRepo yields nil when the database cannot hold vectors.
func provideEmbeddingRepo(db *gorm.DB, log *zap.Logger) repositories.CollegeEmbeddingRepository {
	if !infra.SupportsVectors(db) || !db.Migrator().HasTable(&db_models.CollegeEmbedding{}) {
		log.Info("College embeddings unavailable, semantic search disabled")
		return nil
	}
	return repositories.NewCollegeEmbeddingRepository(db)
}

func provideEmbedder(conf *config.Config, log *zap.Logger) utils.Embedder {
	if conf.Embedding.APIKey == "" {
		log.Info("Embedding API key not set, semantic search disabled")
		return nil
	}
	return utils.NewOpenAIEmbeddingClient(conf.Embedding.APIKey, conf.Embedding.Model)
}

func provideBlobStore(root config.ProjectRoot, conf *config.Config) (storage.BlobStore, error) {
	dir := conf.Server.UploadDir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(string(root), dir)
	}
	blobs, err := storage.NewFSStore(dir)
	if err != nil {
		return nil, err
	}
	return blobs, nil
}

func provideCollegeService(
	collegeRepo repositories.CollegeRepository,
	embeddingRepo repositories.CollegeEmbeddingRepository,
	embedder utils.Embedder,
	blobs storage.BlobStore,
	conf *config.Config,
	log *zap.Logger,
) services.CollegeServiceInterface {
	return services.NewCollegeService(collegeRepo, embeddingRepo, embedder, blobs, conf.Server.MaxUploadBytes, log)
}
