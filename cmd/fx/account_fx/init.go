package account_fx

import (
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edupath/internal/config"
	"edupath/internal/repositories"
	"edupath/internal/services"
	mem "edupath/pkg/memcache"
	"edupath/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideTokenIssuer)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenIssuer(conf *config.Config) (*utils.TokenIssuer, error) {
	if conf.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret must be set (EDUPATH_AUTH_JWT_SECRET)")
	}
	return utils.NewTokenIssuer(conf.Auth.JWTSecret, conf.Auth.TokenTTL), nil
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, store mem.TTLStore, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, store, log)
}
