package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Alp4ka/rankpager"
	"github.com/Alp4ka/rankpager/internal/config"
	"github.com/Alp4ka/rankpager/internal/users"
)

// UserLister serves pages of users.
type UserLister interface {
	List(ctx context.Context, params users.ListParams) (*rankpager.ResultPage[users.User], error)
}

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates the HTTP router.
func NewRouter(svc UserLister, db Pinger, cfg config.Config, logger logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	}))

	h := &handlers{
		users:    svc,
		db:       db,
		paging:   cfg.Paging,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}

	r.Get("/health", h.GetHealth)
	r.Get("/users", h.ListUsers)

	return r
}

type handlers struct {
	users    UserLister
	db       Pinger
	paging   config.Paging
	validate *validator.Validate
	logger   logrus.FieldLogger
}

// requestLogger logs one line per request through logrus.
func requestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
			}).Info("request served")
		})
	}
}
