package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserRolesKey contextKey = "user_roles"
	SessionIDKey contextKey = "session_id"
)

type Claims struct {
	jwt.RegisteredClaims
	Name      string   `json:"name"`
	Roles     []string `json:"roles"`
	SessionID string   `json:"sid"`
}

// SessionRecorder persists the sessions observed in validated tokens.
// *PGSessionStore satisfies it.
type SessionRecorder interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
}

type JWTConfig struct {
	Issuer string
	// SigningKey is the HMAC key shared with the identity provider.
	SigningKey []byte
	// Sessions, when set, records each session the first time its
	// token is seen. The alert journal and the purge command key on
	// these rows. Recording failures never block the request.
	Sessions SessionRecorder
}

func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims := &Claims{}

			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"HS256"}),
			}
			if cfg.Issuer != "" {
				opts = append(opts, jwt.WithIssuer(cfg.Issuer))
			}

			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return cfg.SigningKey, nil
			}, opts...)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, UserIDKey, claims.Subject)
			ctx = context.WithValue(ctx, UserRolesKey, claims.Roles)
			ctx = context.WithValue(ctx, SessionIDKey, claims.SessionID)
			c.SetRequest(c.Request().WithContext(ctx))

			if cfg.Sessions != nil && claims.SessionID != "" {
				recordSession(ctx, cfg.Sessions, claims)
			}

			return next(c)
		}
	}
}

// recordSession upserts the session on first sight. Storage errors are
// swallowed; the session record is bookkeeping, not an auth gate.
func recordSession(ctx context.Context, store SessionRecorder, claims *Claims) {
	existing, err := store.Get(ctx, claims.SessionID)
	if err != nil || existing != nil {
		return
	}
	_ = store.Save(ctx, &Session{
		ID:        claims.SessionID,
		UserID:    claims.Subject,
		Roles:     claims.Roles,
		CreatedAt: time.Now().UTC(),
	})
}

// DevAuthMiddleware is a permissive middleware for development. Every
// request runs as the dev superadmin identity; any Authorization header
// is ignored, never validated.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, UserIDKey, "dev-user")
			ctx = context.WithValue(ctx, UserRolesKey, []string{"superadmin"})
			ctx = context.WithValue(ctx, SessionIDKey, "dev-session")
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(UserRolesKey).([]string)
	return roles
}

func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(SessionIDKey).(string)
	return sid
}
