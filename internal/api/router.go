package api

import (
	"net/http"

	_ "github.com/blaisecz/sleep-data-service/docs"
	"github.com/blaisecz/sleep-data-service/internal/api/handler"
	"github.com/blaisecz/sleep-data-service/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Router struct {
	healthHandler    *handler.HealthHandler
	recordsHandler   *handler.RecordsHandler
	generateHandler  *handler.GenerateHandler
	analyticsHandler *handler.AnalyticsHandler
	importHandler    *handler.ImportHandler
	log              *zap.Logger
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	recordsHandler *handler.RecordsHandler,
	generateHandler *handler.GenerateHandler,
	analyticsHandler *handler.AnalyticsHandler,
	importHandler *handler.ImportHandler,
	log *zap.Logger,
) *Router {
	return &Router{
		healthHandler:    healthHandler,
		recordsHandler:   recordsHandler,
		generateHandler:  generateHandler,
		analyticsHandler: analyticsHandler,
		importHandler:    importHandler,
		log:              log,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.log))
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(rt.log))

	r.Get("/", rt.healthHandler.Root)
	r.Get("/health", rt.healthHandler.Health)
	r.Get("/health/ready", rt.healthHandler.Ready)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/sleep", func(r chi.Router) {
		r.Post("/generate", rt.generateHandler.Generate)
		r.Post("/import/apple_health", rt.importHandler.AppleHealth)
		r.Get("/data", rt.recordsHandler.List)
		r.Get("/analytics", rt.analyticsHandler.Analyze)
		r.Get("/users", rt.recordsHandler.ListUsers)

		r.Route("/records", func(r chi.Router) {
			r.Post("/", rt.recordsHandler.Create)
			r.Get("/{recordId}", rt.recordsHandler.Get)
			r.Put("/{recordId}", rt.recordsHandler.Update)
			r.Delete("/{recordId}", rt.recordsHandler.Delete)
		})
	})

	return r
}
