package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPPort string

	DatabaseURL string

	// UploadDir is resolved to an absolute path once at load; the image
	// store creates it if absent.
	UploadDir      string
	StorageBackend string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	JWTIssuer    string
	JWTAudience  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	CORSAllowedOrigins []string

	AuthRateLimitPerMin int
	APIRateLimitPerMin  int

	RateLimitRedisEnabled bool
	RateLimitRedisPrefix  string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int

	ReadinessProbeTimeout  time.Duration
	ServerStartGracePeriod time.Duration

	OTELServiceName           string
	OTELEnvironment           string
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPInsecure  bool
	OTELMetricsExportInterval time.Duration
	OTELTraceSamplingRatio    float64
	OTELMetricsEnabled        bool
	OTELTracingEnabled        bool
	OTELLogsEnabled           bool
	OTELLogLevel              string
}

const (
	StorageBackendLocal = "local"
	StorageBackendMinio = "minio"
)

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:         env,
		HTTPPort:    getEnv("HTTP_PORT", "8000"),
		DatabaseURL: getEnv("DATABASE_URL", "file:treasures.db"),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendLocal)),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "product-images"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		JWTIssuer:   getEnv("JWT_ISSUER", "kashmiri-treasures-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "kashmiri-treasures-admin"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8080,http://localhost:5173")),

		AuthRateLimitPerMin: getEnvInt("AUTH_RATE_LIMIT_PER_MIN", 30),
		APIRateLimitPerMin:  getEnvInt("API_RATE_LIMIT_PER_MIN", 240),

		RateLimitRedisEnabled: getEnvBool("RATE_LIMIT_REDIS_ENABLED", false),
		RateLimitRedisPrefix:  getEnv("RATE_LIMIT_REDIS_PREFIX", "treasures:rl"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),

		OTELServiceName:          getEnv("OTEL_SERVICE_NAME", "kashmiri-treasures-api"),
		OTELEnvironment:          getEnv("OTEL_ENVIRONMENT", env),
		OTELExporterOTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELExporterOTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELTraceSamplingRatio:   getEnvFloat("OTEL_TRACE_SAMPLING_RATIO", 1.0),
		OTELMetricsEnabled:       getEnvBool("OTEL_METRICS_ENABLED", false),
		OTELTracingEnabled:       getEnvBool("OTEL_TRACING_ENABLED", false),
		OTELLogsEnabled:          getEnvBool("OTEL_LOGS_ENABLED", false),
		OTELLogLevel:             strings.ToLower(getEnv("OTEL_LOG_LEVEL", "info")),
	}

	accessTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("parse JWT_ACCESS_TTL: %w", err)
	}
	cfg.JWTAccessTTL = accessTTL

	probeTimeout, err := time.ParseDuration(getEnv("READINESS_PROBE_TIMEOUT", "1s"))
	if err != nil {
		return nil, fmt.Errorf("parse READINESS_PROBE_TIMEOUT: %w", err)
	}
	cfg.ReadinessProbeTimeout = probeTimeout

	gracePeriod, err := time.ParseDuration(getEnv("SERVER_START_GRACE_PERIOD", "0s"))
	if err != nil {
		return nil, fmt.Errorf("parse SERVER_START_GRACE_PERIOD: %w", err)
	}
	cfg.ServerStartGracePeriod = gracePeriod

	metricsInterval, err := time.ParseDuration(getEnv("OTEL_METRICS_EXPORT_INTERVAL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("parse OTEL_METRICS_EXPORT_INTERVAL: %w", err)
	}
	cfg.OTELMetricsExportInterval = metricsInterval

	abs, err := filepath.Abs(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("resolve UPLOAD_DIR: %w", err)
	}
	cfg.UploadDir = abs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET must be at least 32 chars")
	}
	if c.JWTAccessTTL <= 0 || c.JWTAccessTTL > 7*24*time.Hour {
		errs = append(errs, "JWT_ACCESS_TTL must be between 1s and 7d")
	}
	if c.AdminUsername == "" {
		errs = append(errs, "ADMIN_USERNAME is required")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		errs = append(errs, "one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if c.UploadDir == "" {
		errs = append(errs, "UPLOAD_DIR is required")
	}
	switch c.StorageBackend {
	case StorageBackendLocal:
	case StorageBackendMinio:
		if c.MinioEndpoint == "" {
			errs = append(errs, "MINIO_ENDPOINT is required when STORAGE_BACKEND=minio")
		}
		if c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			errs = append(errs, "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when STORAGE_BACKEND=minio")
		}
		if c.MinioBucket == "" {
			errs = append(errs, "MINIO_BUCKET is required when STORAGE_BACKEND=minio")
		}
	default:
		errs = append(errs, "STORAGE_BACKEND must be one of local, minio")
	}
	if c.AuthRateLimitPerMin <= 0 {
		errs = append(errs, "AUTH_RATE_LIMIT_PER_MIN must be > 0")
	}
	if c.APIRateLimitPerMin <= 0 {
		errs = append(errs, "API_RATE_LIMIT_PER_MIN must be > 0")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsEnabled && c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if !isValidLogLevel(c.OTELLogLevel) {
		errs = append(errs, "OTEL_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
