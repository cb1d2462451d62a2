package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

const SessionCookie = "sid"

type ContextKey string

const (
	userContextKey ContextKey = "user"
)

type SessionStore interface {
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	User      *models.User
	SessionID uuid.UUID
}

type Authenticator struct {
	store  SessionStore
	secret []byte
	now    func() time.Time
}

func NewAuthenticator(store SessionStore, secret []byte) *Authenticator {
	return &Authenticator{store: store, secret: secret, now: time.Now}
}

// AuthMiddleware resolves the session token, if any, and attaches the caller
// to the request. Requests without a valid session pass through anonymously;
// RequireAuth and RequireRole decide whether that is acceptable.
func (a *Authenticator) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := extractToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.resolve(r.Context(), tokenStr)
		if err != nil {
			if !apperr.Is(err, apperr.KindUnauthorized) {
				logrus.WithError(err).Error("failed to resolve session")
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) resolve(ctx context.Context, tokenStr string) (*Identity, error) {
	unauthorized := apperr.New(apperr.KindUnauthorized, "Unauthorized")

	claims, err := utils.ParseSessionToken(a.secret, tokenStr)
	if err != nil {
		return nil, unauthorized
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return nil, unauthorized
	}

	session, err := a.store.GetSession(ctx, sessionID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, unauthorized
		}
		return nil, err
	}
	if session.Expired(a.now()) || session.UserID != claims.UserID {
		return nil, unauthorized
	}

	user, err := a.store.GetUser(ctx, session.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, unauthorized
		}
		return nil, err
	}
	return &Identity{User: user, SessionID: session.ID}, nil
}

func GetAuthenticatedUser(r *http.Request) (*Identity, error) {
	identity, ok := r.Context().Value(userContextKey).(*Identity)
	if !ok || identity == nil {
		return nil, errors.New("no user in context")
	}
	return identity, nil
}

// WithIdentity attaches identity to ctx.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, userContextKey, identity)
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetAuthenticatedUser(r); err != nil {
			utils.RespondError(w, r, apperr.New(apperr.KindUnauthorized, "Unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RoleBasedMiddleware answers 401 without a session and 403 when the
// caller's role is not one of allowedRoles.
func RoleBasedMiddleware(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool)
	for _, role := range allowedRoles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := GetAuthenticatedUser(r)
			if err != nil {
				utils.RespondError(w, r, apperr.New(apperr.KindUnauthorized, "Unauthorized"))
				return
			}

			if !allowed[models.Role(strings.ToLower(string(identity.User.Role)))] {
				utils.RespondError(w, r, apperr.New(apperr.KindForbidden, "Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the back office.
var RequireAdmin = RoleBasedMiddleware(models.RoleAdmin)

func extractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return extractBearerToken(r)
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization format")
	}
	return parts[1], nil
}
