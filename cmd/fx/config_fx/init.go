package config_fx

import (
	"go.uber.org/fx"

	"edupath/internal/config"
)

var Module = fx.Provide(
	provideLoader, provideConfig)

func provideLoader(root config.ProjectRoot) (*config.Loader, error) {
	return config.Load(string(root))
}

// provideConfig hands out the snapshot taken at startup. Components that
// must follow hot reloads depend on *config.Loader instead.
func provideConfig(loader *config.Loader) *config.Config {
	return loader.Config()
}
