/*
Package handler provides the HTTP handlers and routing setup for the chat service.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to the specific handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"dealchat/internal/pkg/limiter"
	"dealchat/internal/pkg/logx"
	"dealchat/internal/pkg/resp"
)

const (
	LoginRate  = 0.2
	LoginBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It configures CORS from the allowed origins, applies global middleware, and
// rate-limits the login endpoint per client IP.
func Router(deps *AppDeps) http.Handler {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":  "ok",
			"service": "dealchat",
		}
		resp.RespondSuccess(w, r, data)
	})

	rateLimitedLogin := loginLimiter.Middleware(HandleLogin(deps))
	r.Post("/auth/login", http.HandlerFunc(rateLimitedLogin.ServeHTTP))

	r.Get("/messages", HandleListMessages(deps))
	r.Post("/messages/send", HandleSendMessage(deps))

	r.Post("/notifications/subscribe", HandleSubscribe(deps))

	r.Post("/upload", HandleUpload(deps))

	return r
}
