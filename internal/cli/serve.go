package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"edupath/cmd/fx/account_fx"
	"edupath/cmd/fx/chat_fx"
	"edupath/cmd/fx/college_fx"
	"edupath/cmd/fx/config_fx"
	"edupath/cmd/fx/controllers_fx"
	"edupath/cmd/fx/dashboard_fx"
	"edupath/cmd/fx/db_fx"
	"edupath/cmd/fx/logger_fx"
	"edupath/cmd/fx/memcache_fx"
	"edupath/cmd/fx/quiz_fx"
	"edupath/cmd/fx/router_fx"
	"edupath/internal/config"
)

// NewServeCmd starts the HTTP API.
func NewServeCmd(root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(*root)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

// NewApp wires every module of the API server.
func NewApp(root string, extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		fx.Supply(config.ProjectRoot(root)),
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		db_fx.Migrate,
		memcache_fx.Module,
		account_fx.Module,
		quiz_fx.Module,
		college_fx.Module,
		chat_fx.Module,
		controllers_fx.Module,
		dashboard_fx.Module,
		router_fx.Module,
	}
	return fx.New(append(opts, extra...)...)
}
