package api

import (
	"net/http"
	"time"

	"filedrop/internal/api/handler"
	"filedrop/internal/api/middleware"
	"filedrop/internal/app/service"
	"filedrop/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	eventService *service.EventService,
	submissionService *service.SubmissionService,
	dashboardService *service.DashboardService,
	activityService *service.ActivityService,
	fileService *service.FileService,
	m *metrics.Manager,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Metrics(m))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler()
		api.Post("/admin/auth", authHandler.Authenticate)

		dashboardHandler := handler.NewDashboardHandler(dashboardService)
		api.Get("/dashboard/stats", dashboardHandler.GetStats)

		eventHandler := handler.NewEventHandler(eventService, fileService)
		api.Route("/events", eventHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(submissionService, fileService)
		api.Route("/submissions", submissionHandler.RegisterRoutes)

		fileHandler := handler.NewFileHandler(fileService)
		api.Route("/files", fileHandler.RegisterRoutes)

		activityHandler := handler.NewActivityHandler(activityService)
		api.Route("/activities", activityHandler.RegisterRoutes)
	})

	return r
}
