package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/go-blog-api/internal/auth"
	"github.com/redmonkez12/go-blog-api/internal/blog"
	"github.com/redmonkez12/go-blog-api/internal/config"
	"github.com/redmonkez12/go-blog-api/internal/httputil"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/profile"
)

// Handlers groups the endpoint handlers mounted by NewRouter
type Handlers struct {
	Auth    *auth.Handler
	Blog    *blog.Handler
	Profile *profile.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, authMiddleware *auth.Middleware, metrics *Metrics, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true, // session cookie
			MaxAge:           300,  // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders(!cfg.Server.IsDevelopment())) // Security headers on all responses
	r.Use(middleware.Recoverer)                         // Recover from panics
	r.Use(middleware.RequestID)                         // Add request ID
	r.Use(middleware.RealIP)                            // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger))                // Structured logging with request context
	r.Use(metrics.Middleware)                           // Request count and latency per route
	r.Use(middleware.Compress(5))                       // Compress responses

	// Public routes
	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		logger.Info("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/logout", h.Auth.Logout)
			r.Patch("/password", h.Auth.UpdatePassword)
		})
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Route("/blogs", func(r chi.Router) {
			r.Post("/", h.Blog.Create)
			r.Get("/", h.Blog.List)
			r.Get("/trash", h.Blog.ListTrash)
			r.Patch("/trash/{id}", h.Blog.Trash)
			r.Patch("/recover/{id}", h.Blog.Recover)
			r.Get("/{id}", h.Blog.Get)
			r.Patch("/{id}", h.Blog.Update)
			r.Delete("/{id}", h.Blog.Delete)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", h.Profile.Get)
			r.Patch("/", h.Profile.Update)
			r.Get("/blogs", h.Profile.Blogs)
			// Same owner-scoped trash query as /blogs/trash
			r.Get("/trash", h.Blog.ListTrash)
		})

		r.Route("/users/delete", func(r chi.Router) {
			r.Patch("/", h.Profile.SoftDelete)
			r.Delete("/{id}", h.Profile.PermanentDelete)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
