// Package reqcontext carries per-request authentication state. The
// carriers are explicit and typed: a request either has a resolved
// identity (set by the auth gate) or a guest status (set by the quota
// gate), never an open-ended attribute bag.
package reqcontext

import (
	"context"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

type contextKey string

const (
	identityKey   contextKey = "identity"
	guestKey      contextKey = "guest"
	identifierKey contextKey = "guest_identifier"
)

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity model.UserSummary) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Identity returns the authenticated identity, if the auth gate set one.
func Identity(ctx context.Context) (model.UserSummary, bool) {
	identity, ok := ctx.Value(identityKey).(model.UserSummary)
	return identity, ok
}

// WithGuestStatus returns a context carrying the guest quota status.
func WithGuestStatus(ctx context.Context, status model.GuestStatus) context.Context {
	return context.WithValue(ctx, guestKey, status)
}

// GuestStatus returns the quota status, if the quota gate set one.
func GuestStatus(ctx context.Context) (model.GuestStatus, bool) {
	status, ok := ctx.Value(guestKey).(model.GuestStatus)
	return status, ok
}

// WithGuestIdentifier returns a context carrying the derived guest
// identifier.
func WithGuestIdentifier(ctx context.Context, identifier string) context.Context {
	return context.WithValue(ctx, identifierKey, identifier)
}

// GuestIdentifier returns the derived guest identifier, if set.
func GuestIdentifier(ctx context.Context) (string, bool) {
	identifier, ok := ctx.Value(identifierKey).(string)
	return identifier, ok
}
