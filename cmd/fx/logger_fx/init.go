package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"edupath/internal/config"
	"edupath/internal/logging"
)

var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
	fx.Invoke(watchConfig),
)

func provideLogger(lc fx.Lifecycle, root config.ProjectRoot, conf *config.Config) (*zap.Logger, error) {
	log, err := logging.Init(string(root), conf.Logging)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

func watchConfig(loader *config.Loader, log *zap.Logger) {
	loader.Watch(log)
}
