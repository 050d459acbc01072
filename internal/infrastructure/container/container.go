// Package container assembles the application with fx: configuration,
// logging, persistence, services, handlers and the HTTP server, plus the
// lifecycle hooks for startup and graceful shutdown.
package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	recipeapp "github.com/forkful/forkful/internal/application/recipe"
	siteapp "github.com/forkful/forkful/internal/application/site"
	userapp "github.com/forkful/forkful/internal/application/user"
	"github.com/forkful/forkful/internal/infrastructure/ai/openai"
	"github.com/forkful/forkful/internal/infrastructure/config"
	"github.com/forkful/forkful/internal/infrastructure/http/apiserver"
	"github.com/forkful/forkful/internal/infrastructure/http/handlers"
	"github.com/forkful/forkful/internal/infrastructure/http/middleware"
	"github.com/forkful/forkful/internal/infrastructure/persistence"
	gormrepo "github.com/forkful/forkful/internal/infrastructure/persistence/gorm"
	"github.com/forkful/forkful/pkg/logger"
	"github.com/forkful/forkful/pkg/validation"
)

// ConfigModule provides configuration loading.
var ConfigModule = fx.Options(
	fx.Provide(func() (*config.Config, error) {
		return config.Load("")
	}),
)

// LoggerModule provides the zap logger built from config.
var LoggerModule = fx.Options(
	fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	}),
)

// DatabaseModule provides the gorm connection and closes it on shutdown.
var DatabaseModule = fx.Options(
	fx.Provide(func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := persistence.Open(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("database connected", zap.String("driver", cfg.Database.Driver))
		return db, nil
	}),
	fx.Invoke(func(lc fx.Lifecycle, db *gorm.DB, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				log.Info("closing database connection")
				return sqlDB.Close()
			},
		})
	}),
)

// RepositoryModule provides the outbound persistence ports.
var RepositoryModule = fx.Options(
	fx.Provide(
		gormrepo.NewRecipeRepository,
		gormrepo.NewReviewRepository,
		gormrepo.NewSavedRecipeRepository,
		gormrepo.NewUserRepository,
		gormrepo.NewContactRepository,
		gormrepo.NewSettingsRepository,
	),
)

// ServiceModule provides the AI adapter and the application services.
var ServiceModule = fx.Options(
	fx.Provide(
		validation.New,
		openai.NewClient,
		recipeapp.NewService,
		userapp.NewService,
		siteapp.NewService,
		func(users *userapp.Service) middleware.IdentityResolver { return users },
	),
)

// HTTPModule provides the handlers and the API server, and binds the
// server to the fx lifecycle.
var HTTPModule = fx.Options(
	fx.Provide(
		handlers.NewRecipeHandler,
		handlers.NewAIHandler,
		handlers.NewReviewHandler,
		handlers.NewSavedRecipeHandler,
		handlers.NewContactHandler,
		handlers.NewAuthHandler,
		handlers.NewAdminHandler,
		handlers.NewHealthHandler,
		func(
			recipes *handlers.RecipeHandler,
			ai *handlers.AIHandler,
			reviews *handlers.ReviewHandler,
			saved *handlers.SavedRecipeHandler,
			contact *handlers.ContactHandler,
			auth *handlers.AuthHandler,
			admin *handlers.AdminHandler,
			health *handlers.HealthHandler,
		) apiserver.Handlers {
			return apiserver.Handlers{
				Recipes: recipes,
				AI:      ai,
				Reviews: reviews,
				Saved:   saved,
				Contact: contact,
				Auth:    auth,
				Admin:   admin,
				Health:  health,
			}
		},
		apiserver.NewServer,
	),
	fx.Invoke(func(lc fx.Lifecycle, server *apiserver.Server, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.Start(); err != nil {
						log.Fatal("API server failed", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)

// Quiet down fx's own event logging to the application logger.
var fxLogger = fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: log.Named("fx")}
})

// New assembles the complete application.
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggerModule,
		DatabaseModule,
		RepositoryModule,
		ServiceModule,
		HTTPModule,
		fxLogger,
	)
}
