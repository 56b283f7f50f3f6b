package middleware

import (
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/koyif/invoicedash/internal/authz"
	"github.com/koyif/invoicedash/internal/config"
	"github.com/koyif/invoicedash/pkg/logger"
)

// SessionCookie carries the signed session token between requests.
const SessionCookie = "session"

// WithAuth derives the session state once per request and routes it through
// the access gate: unauthenticated requests into the dashboard go to the
// login page, authenticated requests outside it go to the dashboard.
func WithAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, loggedIn := sessionUser(r, cfg.PrivateKey)

			decision := authz.Authorize(loggedIn, r.URL.Path)
			switch decision.Kind {
			case authz.Deny:
				logger.Log.Warn("unauthorized request", logger.String("url", r.URL.Path))
				http.Redirect(w, r, authz.LoginPath, http.StatusSeeOther)
				return
			case authz.Redirect:
				http.Redirect(w, r, decision.Target, http.StatusSeeOther)
				return
			}

			if loggedIn {
				r.Header.Set("User-ID", userID)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func sessionUser(r *http.Request, privateKey string) (string, bool) {
	var tokenString string

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		tokenString = cookie.Value
	} else if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		tokenString = strings.TrimPrefix(auth, "Bearer ")
	}

	if tokenString == "" {
		return "", false
	}

	var claims jwt.StandardClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(privateKey), nil
	})
	if err != nil {
		logger.Log.Warn("invalid session token", logger.String("url", r.URL.Path), logger.Error(err))
		return "", false
	}

	return claims.Subject, true
}
