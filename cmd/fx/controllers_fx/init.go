package controllers_fx

import (
	"go.uber.org/fx"

	"edupath/internal/api/controllers"
	"edupath/internal/config"
	"edupath/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideAccountController),
	fx.Provide(controllers.NewQuizController),
	fx.Provide(controllers.NewCollegeController),
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewHealthController))

// Cookies are marked Secure in release mode.
func provideAccountController(accountService services.AccountServiceInterface, conf *config.Config) *controllers.AccountController {
	return controllers.NewAccountController(accountService, conf.Auth, conf.Server.Mode == "release")
}
