package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edupath/internal/config"
	"edupath/internal/infra"
	"edupath/internal/logging"
)

// NewMigrateCmd applies the schema without starting the server.
func NewMigrateCmd(root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := bootstrap(*root)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := infra.OpenDatabase(conf.Database, log)
			if err != nil {
				return err
			}
			defer infra.CloseDatabase(db, log)

			if err := infra.Migrate(cmd.Context(), db, log); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

// bootstrap loads configuration and the logger for one-shot commands.
func bootstrap(root string) (*config.Config, *zap.Logger, error) {
	loader, err := config.Load(root)
	if err != nil {
		return nil, nil, err
	}
	conf := loader.Config()
	log, err := logging.Init(root, conf.Logging)
	if err != nil {
		return nil, nil, err
	}
	return conf, log, nil
}
