package middleware

import (
	"net/http"
	"strings"

	"cinetheque/internal/data/repository"
	"cinetheque/pkg/utils"

	"go.uber.org/zap"
)

// sessionToken extracts the opaque session token from the session cookie,
// falling back to an Authorization bearer header for API clients.
func sessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// Session resolves the current user from the session cookie, if any.
// Anonymous requests pass through with an empty context.
func Session(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	cookieName string,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil || user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Username)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser guards user-scoped routes. Browsers are redirected to the
// login page, JSON clients get a 401.
func RequireUser(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				logger.Warn("Unauthenticated access to protected route",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)

				if utils.WantsJSON(r) {
					utils.ResponseUnauthorized(w, "Authentication required")
					return
				}
				utils.Redirect(w, r, "/login")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
