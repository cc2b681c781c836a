package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/timesheet-core-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	documentHandler *DocumentHandler,
	directoryHandler *DirectoryHandler,
	pricingHandler *PricingHandler,
	paymentHandler *PaymentHandler,
	exportHandler *ExportHandler,
	authHandler *AuthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/document", func(r chi.Router) {
			r.Get("/", documentHandler.Get)
			r.Put("/profile", documentHandler.UpdateProfile)

			r.Route("/tasks/{collection}", func(r chi.Router) {
				r.Post("/", documentHandler.AddTask)
				r.Patch("/{index}", documentHandler.UpdateTask)
				r.Delete("/{index}", documentHandler.RemoveTask)
				r.Post("/{index}/enhance", documentHandler.Enhance)
			})
		})

		r.Route("/directory", func(r chi.Router) {
			r.Get("/assignees", directoryHandler.List)
			r.Post("/refresh", directoryHandler.Refresh)
			r.Post("/sync", directoryHandler.ForceSync)
		})

		r.Get("/pricing", pricingHandler.Get)

		r.Route("/payment", func(r chi.Router) {
			r.Get("/", paymentHandler.State)
			r.Post("/open", paymentHandler.Open)
			r.Post("/cancel", paymentHandler.Cancel)
			r.Post("/submit", paymentHandler.Submit)
		})

		r.Route("/export/{type}", func(r chi.Router) {
			r.Post("/", exportHandler.Generate)
			r.Post("/preview", exportHandler.Preview)
		})

		r.Get("/auth/me", authHandler.Me)
	})

	return r
}
