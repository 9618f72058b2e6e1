package router_fx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"edupath/internal/api"
	"edupath/internal/api/controllers"
	"edupath/internal/config"
	mem "edupath/pkg/memcache"
	"edupath/pkg/storage"
	"edupath/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(ProvideRouter),
	fx.Invoke(StartServer))

type routerDeps struct {
	fx.In

	Conf        *config.Config
	Log         *zap.Logger
	Tokens      *utils.TokenIssuer
	Revocations mem.TTLStore
	Blobs       storage.BlobStore

	Accounts  *controllers.AccountController
	Quiz      *controllers.QuizController
	Colleges  *controllers.CollegeController
	Chat      *controllers.ChatController
	Health    *controllers.HealthController
	Dashboard *controllers.DashboardController
}

func ProvideRouter(d routerDeps) *gin.Engine {
	gin.SetMode(d.Conf.Server.Mode)

	return api.NewRouter(api.RouterParams{
		Log:          d.Log,
		Tokens:       d.Tokens,
		Revocations:  d.Revocations,
		CookieName:   d.Conf.Auth.CookieName,
		FrontendURL:  d.Conf.Server.FrontendURL,
		UploadDir:    d.Blobs.Dir(),
		Development:  d.Conf.Server.Mode != gin.ReleaseMode,
		LoginLimit:   d.Conf.Auth.LoginRateLimit,
		ChatPerMin:   d.Conf.Chat.RateLimitPerMinute,
		MaxMultipart: d.Conf.Server.MaxUploadBytes,
		Accounts:     d.Accounts,
		Quiz:         d.Quiz,
		Colleges:     d.Colleges,
		Chat:         d.Chat,
		Health:       d.Health,
		Dashboard:    d.Dashboard,
	})
}

// StartServer serves the engine for the lifetime of the app and drains
// in-flight requests on stop.
func StartServer(lc fx.Lifecycle, engine *gin.Engine, conf *config.Config, log *zap.Logger, shutdowner fx.Shutdowner) {
	srv := &http.Server{
		Addr:              ":" + conf.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting HTTP server", zap.String("addr", srv.Addr), zap.String("mode", conf.Server.Mode))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
