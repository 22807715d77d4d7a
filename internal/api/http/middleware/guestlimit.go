package middleware

import (
	"net/http"

	"github.com/vidbrief/vidbrief-server/internal/api/http/handler"
	"github.com/vidbrief/vidbrief-server/internal/api/http/reqcontext"
	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
	"github.com/vidbrief/vidbrief-server/internal/service"
)

// GuestLimit is the quota gate. It runs after optional authentication:
// requests with a resolved identity bypass metering entirely. For
// guests it derives the identifier, checks the limit before the
// expensive downstream call, and leaves the post-success increment to
// the handler via the admission reservation.
type GuestLimit struct {
	quota  *service.Quota
	logger *logger.Logger
}

func NewGuestLimit(quota *service.Quota, logger *logger.Logger) *GuestLimit {
	return &GuestLimit{quota: quota, logger: logger}
}

func (m *GuestLimit) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := reqcontext.Identity(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		identifier := m.quota.IdentifierFor(handler.ClientOrigin(r))

		status, err := m.quota.CheckAndAdmit(r.Context(), identifier)
		if err != nil {
			// Fail closed: an unreachable quota store denies.
			handler.WriteError(w, m.logger, err)
			return
		}
		if !status.Admitted {
			m.logger.Info("guest limit reached", "identifier", identifier)
			handler.WriteError(w, m.logger, model.ErrQuotaExceeded)
			return
		}

		ctx := reqcontext.WithGuestIdentifier(r.Context(), identifier)
		ctx = reqcontext.WithGuestStatus(ctx, status)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

