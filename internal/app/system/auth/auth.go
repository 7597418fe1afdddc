package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

const (
	SessionName = "fieldhub-session"

	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// UserLoader resolves the session's user id to the full user document.
// Satisfied by the users store.
type UserLoader interface {
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the signed-in user and a found flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// WithUser returns a request whose context carries u. Handlers read it via
// CurrentUser; tests inject fixture users with it directly.
func WithUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// LoadSessionUser reads the session cookie and, when it marks an
// authenticated user, loads that user's document into the request context.
// A stale session pointing at a deleted user falls through unauthenticated.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionUser(users UserLoader, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Store == nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, _ := Store.Get(r, SessionName)
			if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
				next.ServeHTTP(w, r)
				return
			}

			idHex, _ := sess.Values[userIDKey].(string)
			id, err := primitive.ObjectIDFromHex(idHex)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.ByID(r.Context(), id)
			if err != nil {
				log.Warn("session user lookup failed", zap.String("user_id", idHex), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, WithUser(r, u))
		})
	}
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// API callers get a plain 401; there is no HTML surface to redirect to.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireNonGuest rejects guest accounts with a 403. Guests may read public
// data but never submit, validate, or import.
func RequireNonGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if u.IsGuest {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// InitSessionStore initializes the global session Store using the provided
// session key and domain. The `secure` flag controls whether cookies are
// marked Secure and which SameSite mode is used.
//
// In production (secure=true), cookies should be Secure + SameSite=None
// (for cross-site use with HTTPS).
// In local dev over http://localhost, use secure=false so cookies are accepted.
func InitSessionStore(sessionKey, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}

	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return nil
}
