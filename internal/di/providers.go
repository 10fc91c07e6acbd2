package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kashmiricraft/treasures-api/internal/app"
	"github.com/kashmiricraft/treasures-api/internal/config"
	"github.com/kashmiricraft/treasures-api/internal/database"
	"github.com/kashmiricraft/treasures-api/internal/health"
	"github.com/kashmiricraft/treasures-api/internal/http/handler"
	"github.com/kashmiricraft/treasures-api/internal/http/middleware"
	"github.com/kashmiricraft/treasures-api/internal/http/router"
	"github.com/kashmiricraft/treasures-api/internal/observability"
	"github.com/kashmiricraft/treasures-api/internal/repository"
	"github.com/kashmiricraft/treasures-api/internal/security"
	"github.com/kashmiricraft/treasures-api/internal/service"
	"github.com/kashmiricraft/treasures-api/internal/storage"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideImageStore,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewProductRepository,
)

var SecuritySet = wire.NewSet(
	provideJWTManager,
)

var ServiceSet = wire.NewSet(
	service.NewProductService,
	service.NewAuthService,
	wire.Bind(new(service.ProductServiceInterface), new(*service.ProductServiceImpl)),
	wire.Bind(new(service.AuthServiceInterface), new(*service.AuthService)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewProductHandler,
	handler.NewUploadsHandler,
	provideGlobalRateLimiter,
	provideAuthRateLimiter,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

// MigrationRunner applies the schema and seeds the starter catalog outside
// the serving path (catalogctl).
type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (m *MigrationRunner) Run() error {
	if err := database.Migrate(m.db); err != nil {
		return err
	}
	report, err := database.Seed(m.db)
	if err != nil {
		return err
	}
	fmt.Printf("migration complete (seeded %d products)\n", report.CreatedProducts)
	return nil
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if _, err := database.Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	if !cfg.RateLimitRedisEnabled {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func provideImageStore(cfg *config.Config) (storage.ImageStore, error) {
	if cfg.StorageBackend == config.StorageBackendMinio {
		return storage.NewMinioImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	}
	return storage.NewLocalImageStore(cfg.UploadDir)
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSecret)
}

func provideGlobalRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) router.GlobalRateLimiterFunc {
	if cfg.RateLimitRedisEnabled && redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.RateLimitRedisPrefix+":api")
		return middleware.NewDistributedRateLimiter(
			redisLimiter,
			cfg.APIRateLimitPerMin,
			time.Minute,
			middleware.FailOpen,
			"api",
		).Middleware()
	}
	return middleware.NewRateLimiter(cfg.APIRateLimitPerMin, time.Minute).Middleware()
}

func provideAuthRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) router.AuthRateLimiterFunc {
	if cfg.RateLimitRedisEnabled && redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.RateLimitRedisPrefix+":auth")
		return middleware.NewDistributedRateLimiter(
			redisLimiter,
			cfg.AuthRateLimitPerMin,
			time.Minute,
			middleware.FailClosed,
			"auth",
		).Middleware()
	}
	return middleware.NewRateLimiter(cfg.AuthRateLimitPerMin, time.Minute).Middleware()
}

func provideRouterDependencies(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	uploadsHandler *handler.UploadsHandler,
	jwt *security.JWTManager,
	globalRateLimiter router.GlobalRateLimiterFunc,
	authRateLimiter router.AuthRateLimiterFunc,
	readiness *health.ProbeRunner,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:       authHandler,
		ProductHandler:    productHandler,
		UploadsHandler:    uploadsHandler,
		JWTManager:        jwt,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		AuthRateLimitRPM:  cfg.AuthRateLimitPerMin,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
		GlobalRateLimiter: globalRateLimiter,
		AuthRateLimiter:   authRateLimiter,
		Readiness:         readiness,
		EnableOTelHTTP:    cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	checkers := make([]health.Checker, 0, 3)
	if c := health.NewDBChecker(db); c != nil {
		checkers = append(checkers, c)
	}
	if cfg.RateLimitRedisEnabled {
		if c := health.NewRedisChecker(redisClient); c != nil {
			checkers = append(checkers, c)
		}
	}
	if cfg.StorageBackend == config.StorageBackendLocal {
		if c := health.NewUploadDirChecker(cfg.UploadDir); c != nil {
			checkers = append(checkers, c)
		}
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, cfg.ServerStartGracePeriod, checkers...)
}
