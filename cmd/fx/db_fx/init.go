package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edupath/internal/config"
	"edupath/internal/infra"
)

var Module = fx.Provide(
	provideDB)

// Migrate runs the schema migration while the graph is built, so providers
// that probe the schema see the migrated tables.
var Migrate = fx.Invoke(migrate)

func provideDB(lc fx.Lifecycle, conf *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(conf.Database, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db, log)
			return nil
		},
	})
	return db, nil
}

func migrate(db *gorm.DB, log *zap.Logger) error {
	return infra.Migrate(context.Background(), db, log)
}
