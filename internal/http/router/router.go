package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kashmiricraft/treasures-api/internal/health"
	"github.com/kashmiricraft/treasures-api/internal/http/handler"
	"github.com/kashmiricraft/treasures-api/internal/http/middleware"
	"github.com/kashmiricraft/treasures-api/internal/http/response"
	"github.com/kashmiricraft/treasures-api/internal/security"
)

type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ProductHandler    *handler.ProductHandler
	UploadsHandler    *handler.UploadsHandler
	JWTManager        *security.JWTManager
	CORSOrigins       []string
	AuthRateLimitRPM  int
	APIRateLimitRPM   int
	GlobalRateLimiter GlobalRateLimiterFunc
	AuthRateLimiter   AuthRateLimiterFunc
	Readiness         *health.ProbeRunner
	EnableOTelHTTP    bool
}

type GlobalRateLimiterFunc func(http.Handler) http.Handler
type AuthRateLimiterFunc func(http.Handler) http.Handler

// productWriteBodyLimit bounds multipart product writes; image uploads make
// these requests far larger than the JSON default.
const (
	defaultBodyLimit      = 1 << 20
	productWriteBodyLimit = 25 << 20
)

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	if dep.GlobalRateLimiter != nil {
		r.Use(dep.GlobalRateLimiter)
	} else {
		r.Use(middleware.NewRateLimiter(dep.APIRateLimitRPM, time.Minute).Middleware())
	}

	authLimiter := dep.AuthRateLimiter
	if authLimiter == nil {
		authLimiter = middleware.NewRateLimiter(dep.AuthRateLimitRPM, time.Minute).Middleware()
	}

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if dep.Readiness == nil {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": []any{}})
			return
		}
		ready, results := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "dependencies are not ready", map[string]any{"checks": results})
	})

	r.Route("/api", func(r chi.Router) {
		// Liveness alias kept at /api/health for storefront compatibility.
		r.With(middleware.BodyLimit(defaultBodyLimit)).Get("/health", func(w http.ResponseWriter, r *http.Request) {
			response.JSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.BodyLimit(defaultBodyLimit))
			r.With(authLimiter).Post("/login", dep.AuthHandler.Login)
			r.With(middleware.AuthMiddleware(dep.JWTManager)).Get("/me", dep.AuthHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.With(middleware.BodyLimit(defaultBodyLimit)).Get("/", dep.ProductHandler.List)
			r.With(middleware.BodyLimit(defaultBodyLimit)).Get("/{id}", dep.ProductHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(dep.JWTManager))
				r.Use(middleware.BodyLimit(productWriteBodyLimit))
				r.Post("/", dep.ProductHandler.Create)
				r.Put("/{id}", dep.ProductHandler.Update)
				r.Delete("/{id}", dep.ProductHandler.Delete)
			})
		})
	})

	r.Get("/uploads/{filename}", dep.UploadsHandler.Serve)

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}
