package httpx

import (
	"net/http"
	"time"

	"sukaikan/internal/logger"
	"sukaikan/internal/middleware"
	"sukaikan/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 15 * time.Second

// RouterConfig carries what the router needs besides the handler.
type RouterConfig struct {
	Sessions      session.Store
	Limiter       *middleware.RateLimiter
	SecureCookies bool
}

func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware, logger.LoggingMiddleware)
	r.Use(chimw.Timeout(requestTimeout))
	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(cfg.Sessions, cfg.SecureCookies))
		h.Register(r)
	})

	return r
}
