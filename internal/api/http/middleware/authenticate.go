package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vidbrief/vidbrief-server/internal/api/http/cookie"
	"github.com/vidbrief/vidbrief-server/internal/api/http/handler"
	"github.com/vidbrief/vidbrief-server/internal/api/http/reqcontext"
	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
)

// AccessVerifier validates access tokens and returns their subject.
type AccessVerifier interface {
	VerifyAccess(token string) (uuid.UUID, error)
}

// IdentityResolver confirms a subject still maps to a live account.
type IdentityResolver interface {
	Profile(ctx context.Context, userID uuid.UUID) (model.UserSummary, error)
}

// Authenticate is the authentication gate. Token verification is pure
// in-memory work; the one store touch is the identity lookup that
// guards against tokens outliving a deleted account.
type Authenticate struct {
	tokens   AccessVerifier
	identity IdentityResolver
	logger   *logger.Logger
}

func NewAuthenticate(tokens AccessVerifier, identity IdentityResolver, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, identity: identity, logger: logger}
}

// Require rejects requests without a valid access credential. An
// expired token gets a distinguished error so the client can refresh
// instead of re-authenticating.
func (m *Authenticate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.resolve(r)
		if err != nil {
			handler.WriteError(w, m.logger, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(reqcontext.WithIdentity(r.Context(), identity)))
	})
}

// Optional resolves an access credential when one is presented and
// passes anonymous requests through untouched. A presented-but-expired
// token is still rejected with the distinguished error: silently
// downgrading a logged-in user to a metered guest would be worse than
// asking for a refresh.
func (m *Authenticate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenString(r) == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.resolve(r)
		if err != nil {
			handler.WriteError(w, m.logger, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(reqcontext.WithIdentity(r.Context(), identity)))
	})
}

func (m *Authenticate) resolve(r *http.Request) (model.UserSummary, error) {
	token := tokenString(r)
	if token == "" {
		return model.UserSummary{}, model.ErrUnauthenticated
	}

	userID, err := m.tokens.VerifyAccess(token)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			return model.UserSummary{}, model.ErrAccessExpired
		}
		return model.UserSummary{}, model.ErrUnauthenticated
	}

	identity, err := m.identity.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrStoreUnavailable) {
			// Fail closed, but do not pretend the credential was bad.
			return model.UserSummary{}, err
		}
		return model.UserSummary{}, model.ErrUnauthenticated
	}

	return identity, nil
}

// tokenString prefers the access cookie and falls back to a bearer
// header for non-browser clients.
func tokenString(r *http.Request) string {
	if value := cookie.Read(r, cookie.AccessName); value != "" {
		return value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
