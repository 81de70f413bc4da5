package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/common"
	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
)

// Session makes sure every request carries a session id. A missing or
// malformed sid cookie is replaced by a fresh one.
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if cookie, err := r.Cookie(constants.CookieSession); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sid = cookie.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, sessionCookie(constants.CookieSession, sid, secure))
			}

			logger := zerolog.Ctx(r.Context()).With().Str(log.KeySessionID, sid).Logger()
			c := common.AttachSessionID(r.Context(), sid)
			c = logger.WithContext(c)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// EndSession rotates the sid cookie and expires the cart cookie, so whatever
// the browser does after signing out starts from a fresh guest session.
func EndSession(w http.ResponseWriter, secure bool) string {
	sid := uuid.NewString()
	http.SetCookie(w, sessionCookie(constants.CookieSession, sid, secure))

	cart := sessionCookie(constants.CookieCart, "", secure)
	cart.MaxAge = -1
	http.SetCookie(w, cart)
	return sid
}

func sessionCookie(name, value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(constants.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
