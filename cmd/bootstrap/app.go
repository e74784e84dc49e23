package bootstrap

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"riviera-booking/cmd/bootstrap/components"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/pkg/config"
	"riviera-booking/internal/pkg/jwt"
	"riviera-booking/internal/pkg/metrics"
	"riviera-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)
}

func NewMetrics() *metrics.Metrics {
	return metrics.New("riviera_booking")
}

func NewPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cleanup()
			return nil
		},
	})
	return pool, nil
}

func registerServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Server.Port),
		Handler: engine,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				slog.Info("http server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("http server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func registerWorkers(lc fx.Lifecycle, dispatcher *commands.NotificationDispatcher, maintenance *commands.MaintenanceWorker) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go dispatcher.Run(ctx)
			go maintenance.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// App assembles the whole dependency graph.
func App() fx.Option {
	return fx.Options(
		fx.Provide(
			config.LoadConfig,
			NewPool,
			NewJWTService,
			NewMetrics,
		),
		components.RepositoryModule,
		components.UsecaseModule,
		components.HandlerModule,
		fx.Invoke(NewLogger, registerServer, registerWorkers),
	)
}
