package session

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/wolfman30/tennis-booking/pkg/logging"
)

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Middleware attaches a session id to every request. A missing or invalid
// cookie starts a new session; the cookie is re-signed on each request so
// its expiry slides with activity.
func Middleware(signer *Signer, opts CookieOptions, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Name == "" {
		opts.Name = "tb_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(opts.Name); err == nil {
				if sid, err := signer.Verify(c.Value); err == nil {
					id = sid
				} else {
					logger.Debug("discarding session cookie", "error", err)
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			token, err := signer.Sign(id)
			if err != nil {
				logger.Error("failed to sign session cookie", "error", err)
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     opts.Name,
				Value:    token,
				Path:     "/",
				MaxAge:   int(signer.ttl.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}
