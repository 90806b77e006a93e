package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/tennis-booking/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/tennis-booking/internal/http/middleware"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Pages              *handlers.BookingPageHandler
	Session            func(http.Handler) http.Handler
	SubmitLimiter      *httpmiddleware.RateLimiter
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))

	// Probes
	r.Get("/health", handlers.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Visitor page and interactions
	r.Group(func(page chi.Router) {
		page.Use(cfg.Session)
		page.Get("/", cfg.Pages.Page)
		page.Get("/view.json", cfg.Pages.ViewJSON)

		page.Post("/navigate/{view}", cfg.Pages.Navigate)
		page.Post("/coaches/{coachID}/select", cfg.Pages.SelectCoach)
		page.Post("/dates/{date}/select", cfg.Pages.SelectDate)
		page.Post("/slots/{slotID}/select", cfg.Pages.SelectSlot)
		page.Post("/modal/close", cfg.Pages.CloseModal)
		page.Post("/alert/dismiss", cfg.Pages.DismissAlert)

		page.Post("/bookings/{bookingID}/cancel", cfg.Pages.RequestCancel)
		page.Post("/bookings/cancel/confirm", cfg.Pages.ConfirmCancel)
		page.Post("/bookings/cancel/abort", cfg.Pages.AbortCancel)

		// Submissions that reach the backend's write or search paths
		page.Group(func(submit chi.Router) {
			if cfg.SubmitLimiter != nil {
				submit.Use(httpmiddleware.RateLimit(cfg.SubmitLimiter))
			}
			submit.Post("/book", cfg.Pages.Book)
			submit.Post("/bookings/lookup", cfg.Pages.Lookup)
		})
	})

	return r
}
