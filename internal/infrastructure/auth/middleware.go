package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
)

type contextKey struct{}

var identityKey = contextKey{}

type Authenticator struct {
	secret      []byte
	groupsClaim string
	editorGroup string
	logger      logging.Logger
}

func NewAuthenticator(secret, groupsClaim, editorGroup string, logger logging.Logger) *Authenticator {
	return &Authenticator{
		secret:      []byte(secret),
		groupsClaim: groupsClaim,
		editorGroup: editorGroup,
		logger:      logger,
	}
}

// Middleware resolves the caller's identity from the bearer token and
// attaches it to the request context. A missing or unverifiable token
// degrades to the anonymous viewer identity; it never rejects the request.
// Capability enforcement happens at the mutating handlers.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.identityFromRequest(r)
		if err != nil {
			a.logger.Warn(logging.General, logging.Authorization, "rejected bearer token", map[logging.ExtraKey]any{
				logging.Path:         r.URL.Path,
				logging.ErrorMessage: err.Error(),
			})
			identity = Anonymous()
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) identityFromRequest(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Anonymous(), nil
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return Anonymous(), fmt.Errorf("authorization header is not a bearer token")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return Anonymous(), fmt.Errorf("parse bearer token: %w", err)
	}

	return a.identityFromClaims(claims), nil
}

func (a *Authenticator) identityFromClaims(claims jwt.MapClaims) Identity {
	identity := Identity{
		Groups: NormalizeGroups(claims[a.groupsClaim]),
	}

	if sub, ok := claims["sub"].(string); ok {
		identity.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}

	return identity
}

// IsEditor reports whether the identity carries the editor group. Group
// membership is the whole check: no hierarchy, no per-record ownership.
func (a *Authenticator) IsEditor(identity Identity) bool {
	return identity.InGroup(a.editorGroup)
}

// IdentityFromContext returns the identity stored by Middleware, or the
// anonymous viewer when the middleware did not run.
func IdentityFromContext(ctx context.Context) Identity {
	if identity, ok := ctx.Value(identityKey).(Identity); ok {
		return identity
	}
	return Anonymous()
}

// WithIdentity is a test seam for injecting an identity into a context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
