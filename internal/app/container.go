package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"campus-jobs/internal/config"
	"campus-jobs/internal/database"
	dbpostgres "campus-jobs/internal/database/postgres"
	"campus-jobs/internal/delivery/http/handler"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/delivery/http/routes"
	v1 "campus-jobs/internal/delivery/http/routes/v1"
	"campus-jobs/internal/domain"
	"campus-jobs/internal/infrastructure/cache"
	"campus-jobs/internal/infrastructure/storage"
	"campus-jobs/internal/pkg/jwt"
	"campus-jobs/internal/pkg/logger"
	"campus-jobs/internal/pkg/telemetry"
	"campus-jobs/internal/repository"
	ucauth "campus-jobs/internal/usecase/auth"
	"campus-jobs/internal/usecase/catalog"
	"campus-jobs/internal/usecase/profile"
	"campus-jobs/internal/usecase/tracker"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const startTimeout = 10 * time.Second

// Module is the full dependency graph of the API server.
var Module = fx.Options(
	fx.Provide(
		config.Load,
		newLogger,
		newDatabase,
		newCache,
		newBlobStore,
		newTokenService,
		newStore,
		newCatalog,
		newTracker,
		newAuthService,
		newProfileService,
		newRegistry,
		NewFiber,
	),
	fx.Invoke(initTracing, startServer),
)

func newLogger(cfg config.Config, lc fx.Lifecycle) (*zap.Logger, error) {
	log, err := logger.New(cfg.App)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

func newDatabase(cfg config.Config, lc fx.Lifecycle) (database.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return db.Close() },
	})
	return db, nil
}

func newCache(cfg config.Config, log *zap.Logger, lc fx.Lifecycle) *cache.Redis {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c := cache.NewRedis(ctx, cfg.Redis, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return c.Close() },
	})
	return c
}

func newBlobStore(cfg config.Config) (profile.BlobStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	blobs, err := storage.NewS3Store(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}
	return blobs, nil
}

func newTokenService(cfg config.Config) jwt.Service {
	return jwt.NewHMACService(
		cfg.App.AppName,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
}

func newStore(db database.DB) domain.Store {
	return repository.NewPostgresStore(db)
}

func newCatalog(store domain.Store, c *cache.Redis, log *zap.Logger) *catalog.Catalog {
	return catalog.NewCatalog(store, c, c.TTL(), log)
}

func newTracker(store domain.Store, c *catalog.Catalog, log *zap.Logger) *tracker.Tracker {
	return tracker.NewTracker(store, c, log)
}

func newAuthService(store domain.Store, tokens jwt.Service, log *zap.Logger) *ucauth.Service {
	return ucauth.NewService(store, tokens, log)
}

func newProfileService(store domain.Store, blobs profile.BlobStore, c *catalog.Catalog, log *zap.Logger) *profile.Service {
	return profile.NewService(store.Users(), blobs, c, log)
}

func newRegistry(
	cfg config.Config,
	db database.DB,
	c *cache.Redis,
	authSvc *ucauth.Service,
	cat *catalog.Catalog,
	trk *tracker.Tracker,
	prof *profile.Service,
) *routes.Registry {
	handlers := v1.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, cfg.HTTP.CookieSecure),
		Jobs:    handler.NewJobsHandler(cat, trk),
		Student: handler.NewStudentHandler(trk),
		Profile: handler.NewProfileHandler(prof),
		Health:  handler.NewHealthHandler(db, c),
	}
	return routes.NewRegistry(handlers, middleware.NewAuthMiddleware(authSvc), middleware.AuthRateLimit(cfg.HTTP.AuthRateLimitPerMin))
}

func initTracing(cfg config.Config, log *zap.Logger, lc fx.Lifecycle) error {
	shutdown, err := telemetry.InitTracer(context.Background(), cfg.App.AppName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return err
	}
	if cfg.Telemetry.OTLPEndpoint == "" {
		log.Info("tracing disabled: no OTLP endpoint configured")
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return nil
}

func startServer(cfg config.Config, f *fiber.App, log *zap.Logger, lc fx.Lifecycle, sd fx.Shutdowner) error {
	addr, err := ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", addr))
				if err := f.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server shutting down")
			return f.ShutdownWithContext(ctx)
		},
	})
	return nil
}
