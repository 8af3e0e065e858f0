package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/simplechat/simplechat/backend/internal/setup"
	mw "github.com/simplechat/simplechat/shared/middleware"
	"github.com/simplechat/simplechat/shared/middleware/metrics"
	rl "github.com/simplechat/simplechat/shared/middleware/ratelimiter"
)

// New creates the chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit request for all endpoints combined in that group
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestLog)
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(mw.RateLimit(rl.Rps10(), mw.GetIP)) // 10 RPS per IP
		v1.Use(mw.GlobalRateLimit(rl.New(1000, 1000, time.Hour)))
		v1.Use(deps.AuthMiddleware.NeedAuth())
		v1.Use(mw.RateLimit(rl.Rps100(), mw.GetUserIDFromContext)) // 100 RPS per user

		v1.Route("/threads", func(threads chi.Router) {
			threads.Get("/", h.ListThreads)
			// CreateThread: 1 per second per user
			threads.With(mw.RateLimit(rl.OnceInSecond(), mw.GetUserIDFromContext)).Post("/", h.CreateThread)
			threads.Delete("/{thread}", h.DeleteThread)

			threads.Get("/{thread}/messages", h.ListMessages)
			// CreateMessage: 1 per second per user
			threads.With(mw.RateLimit(rl.OnceInSecond(), mw.GetUserIDFromContext)).Post("/{thread}/messages", h.CreateMessage)
		})

		v1.Route("/messages", func(messages chi.Router) {
			messages.Patch("/{message}/read", h.MarkMessageRead)
			messages.Get("/unread", h.ListUnread)
			messages.Get("/unread/count", h.CountUnread)
		})
	})

	return r
}
