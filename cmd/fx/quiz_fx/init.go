package quiz_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edupath/internal/repositories"
	"edupath/internal/services"
)

var Module = fx.Provide(
	provideQuizRepo, provideQuizService)

func provideQuizRepo(db *gorm.DB) repositories.QuizResultRepository {
	return repositories.NewQuizResultRepository(db)
}

func provideQuizService(repo repositories.QuizResultRepository, log *zap.Logger) services.QuizServiceInterface {
	return services.NewQuizService(repo, log)
}
