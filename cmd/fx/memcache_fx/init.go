package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"edupath/internal/config"
	"edupath/internal/infra"
	mem "edupath/pkg/memcache"
)

var Module = fx.Provide(provideTTLStore)

func provideTTLStore(lc fx.Lifecycle, conf *config.Config, log *zap.Logger) (mem.TTLStore, error) {
	store, closeFn, err := infra.NewTTLStore(context.Background(), conf.Redis, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closeFn()
		},
	})
	return store, nil
}
