/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, copied into the request logger
  2. RealIP:     Client address from X-Forwarded-For / X-Real-IP
  3. hlog:       zerolog logger in the request context, one access line
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. Timeout:    Request context deadline
  6. CORS:       Cross-origin requests for the app clients

ROUTE GROUPS:
  /healthz                  Store reachability
  /api/scenarios            Demo scenario catalogue
  /api/users/{userID}/*     Everything else, behind the caller check

CALLER CHECK:
  The X-User-ID header must equal {userID}. There is no other
  authentication; an upstream gateway is expected to set the header.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/warp/shift-engine/engine"
)

// CallerHeader carries the authenticated user id.
const CallerHeader = "X-User-ID"

// RouterOptions tunes the middleware. Zero values get defaults.
type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(h.Logger))
	r.Use(requestIDField)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", CallerHeader},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Health)
	r.Get("/api/scenarios", h.ListScenarios)

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Use(requireCaller)

		r.Route("/employers", func(r chi.Router) {
			r.Get("/", h.ListEmployers)
			r.Post("/", h.CreateEmployer)
			r.Delete("/{id}", h.DeactivateEmployer)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Post("/overlap", h.CheckOverlap)
			r.Put("/{id}", h.UpdateShift)
			r.Delete("/{id}", h.DeleteShift)
			r.Post("/{id}/complete", h.CompleteShift)
			r.Post("/{id}/missed", h.MarkMissed)
		})

		r.Get("/stats", h.GetStats)
		r.Get("/usage", h.GetUsage)

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", h.ListAchievements)
			r.Post("/evaluate", h.EvaluateAchievements)
		})

		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.PutProfile)

		r.Post("/scenarios/load", h.LoadScenario)
	})

	return r
}

// requireCaller rejects requests whose caller header does not name the
// path user.
func requireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := r.Header.Get(CallerHeader)
		if caller == "" || caller != chi.URLParam(r, "userID") {
			writeJSON(w, http.StatusForbidden, ErrorResponse{
				Error: "Forbidden",
				Kind:  string(engine.KindUnauthorized),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
