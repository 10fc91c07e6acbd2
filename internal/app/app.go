package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kashmiricraft/treasures-api/internal/config"
	"github.com/kashmiricraft/treasures-api/internal/health"
	"github.com/kashmiricraft/treasures-api/internal/observability"
)

// App bundles the wired process-level components so main can run and then
// tear them down in order.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Server        *http.Server
	Observability *observability.Runtime
	DB            *gorm.DB
	Redis         redis.UniversalClient
	Readiness     *health.ProbeRunner

	ShutdownTimeout              time.Duration
	ShutdownHTTPDrainTimeout     time.Duration
	ShutdownObservabilityTimeout time.Duration
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) *App {
	return &App{
		Config:                       cfg,
		Logger:                       logger,
		Server:                       server,
		Observability:                runtime,
		DB:                           db,
		Redis:                        redisClient,
		Readiness:                    readiness,
		ShutdownTimeout:              20 * time.Second,
		ShutdownHTTPDrainTimeout:     10 * time.Second,
		ShutdownObservabilityTimeout: 8 * time.Second,
	}
}
