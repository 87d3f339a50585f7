package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Rrens/teetime/internal/api/handler"
	customMiddleware "github.com/Rrens/teetime/internal/api/middleware"
	"github.com/Rrens/teetime/internal/config"
	"github.com/Rrens/teetime/internal/security"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Config    *config.Config
	DB        handler.Pinger
	Tokens    customMiddleware.TokenValidator
	Courses   handler.CourseService
	TeeTimes  handler.TeeTimeService
	Chat      handler.ChatService
	Providers handler.ProviderLister
	// Limiter is optional; without it chat requests are not rate limited
	Limiter        customMiddleware.Limiter
	ActiveSessions func() int
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Server.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	courseHandler := handler.NewCourseHandler(deps.Courses)
	teeTimeHandler := handler.NewTeeTimeHandler(deps.TeeTimes)
	chatHandler := handler.NewChatHandler(deps.Chat)

	authMiddleware := customMiddleware.NewAuthMiddleware(deps.Tokens)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.DB))

		// Public course catalogue
		r.Get("/courses", courseHandler.List)
		r.Get("/courses/{courseID}", courseHandler.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Group(func(r chi.Router) {
				if deps.Limiter != nil {
					r.Use(customMiddleware.NewRateLimitMiddleware(deps.Limiter).Limit)
				}
				r.Post("/chat", chatHandler.Send)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(customMiddleware.RequireRole(security.RoleAdmin))

				r.Get("/llm-providers", handler.ListLLMProviders(deps.Providers, deps.ActiveSessions))

				r.Route("/courses", func(r chi.Router) {
					r.Get("/", courseHandler.List)
					r.Post("/", courseHandler.Create)

					r.Route("/{courseID}", func(r chi.Router) {
						r.Get("/", courseHandler.Get)
						r.Put("/", courseHandler.Update)
						r.Delete("/", courseHandler.Delete)
					})
				})

				r.Route("/tee-times", func(r chi.Router) {
					r.Get("/", teeTimeHandler.List)
					r.Post("/bulk", teeTimeHandler.BulkCreate)
					r.Delete("/all", teeTimeHandler.DeleteAll)
					r.Delete("/{teeTimeID}", teeTimeHandler.Delete)
				})
			})
		})
	})

	return r
}
