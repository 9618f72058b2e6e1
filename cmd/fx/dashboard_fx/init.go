package dashboard_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"edupath/internal/api/controllers"
	"edupath/internal/repositories"
	"edupath/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService, controllers.NewDashboardController,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(dashboardRepo repositories.DashboardRepository) services.DashboardService {
	return services.NewDashboardService(dashboardRepo)
}
