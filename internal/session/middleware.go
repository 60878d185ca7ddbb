package session

import (
	"errors"
	"net/http"

	"sukaikan/internal/logger"

	"go.uber.org/zap"
)

// Middleware loads the visitor's session into the request context,
// starting a new one when the cookie is missing or unknown. Handlers that
// change the session save it themselves.
func Middleware(store Store, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var s *Session
			if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
				loaded, err := store.Load(ctx, c.Value)
				switch {
				case err == nil:
					s = loaded
				case errors.Is(err, ErrSessionNotFound):
				default:
					logger.FromCtx(ctx).Error("failed to load session, starting a new one", zap.Error(err))
				}
			}

			if s == nil {
				s = New()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    s.ID,
					Path:     "/",
					MaxAge:   int(DefaultTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = logger.WithSessionID(WithSession(ctx, s), s.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
