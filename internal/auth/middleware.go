package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"sellerhub/internal/commons"
)

type contextKey string

const principalIDKey contextKey = "principalID"

// Claims carries the id of the user the token was issued to.
type Claims struct {
	UserID int `json:"userId"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("token has no userId")
	}

	return claims, nil
}

// Middleware rejects requests without a valid Bearer token and stores the
// token's user id in the request context.
func Middleware(verifier *Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: missing or malformed token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeUnauthorized(w, "missing bearer token", logger)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeUnauthorized(w, "invalid or expired token", logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipalID(r.Context(), claims.UserID)))
		})
	}
}

func WithPrincipalID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, principalIDKey, id)
}

// PrincipalIDFromContext returns the authenticated user id, or false when the
// request did not pass through Middleware.
func PrincipalIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(principalIDKey).(int)
	return id, ok && id > 0
}

// RequirePrincipal returns the authenticated user id or answers 401.
func RequirePrincipal(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int, bool) {
	id, ok := PrincipalIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token", logger)
	}
	return id, ok
}

func writeUnauthorized(w http.ResponseWriter, message string, logger *zap.Logger) {
	commons.WriteJSON(w, http.StatusUnauthorized, commons.ErrorResponse{
		Status:    http.StatusUnauthorized,
		Code:      "UNAUTHORIZED",
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, logger)
}
