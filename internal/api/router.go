package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Engine  SchedulingEngine
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Logger  zerolog.Logger
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Get("/availability", getAvailabilityHandler(cfg.Engine))

	r.Post("/appointments", createAppointmentHandler(cfg.Engine))
	r.Get("/appointments", listAppointmentsHandler(cfg.Engine))
	r.Post("/appointments/validate", validateBookingHandler(cfg.Engine))
	r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Engine))

	r.Post("/professionals/{id}/schedules", createScheduleHandler(cfg.Engine))
	r.Get("/professionals/{id}/schedules", listSchedulesHandler(cfg.Engine))

	r.Post("/lifecycle/advance", advanceLifecycleHandler(cfg.Engine))

	return r
}
