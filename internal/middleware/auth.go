package middleware

import (
	"net/http"

	"sukaikan/internal/admin"
	"sukaikan/internal/auth"
	"sukaikan/internal/logger"
	"sukaikan/internal/utils"

	"go.uber.org/zap"
)

// TokenVerifier validates admin tokens.
type TokenVerifier interface {
	Verify(token string) (*admin.Claims, error)
}

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/login"

// RequireAdmin lets a request through only with a valid admin token; others
// are redirected to the login page.
func RequireAdmin(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected admin token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				auth.ClearTokenCookie(w)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			ctx := utils.SetAdminContext(r.Context(), claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
