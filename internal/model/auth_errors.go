package model

import "errors"

// Caller-visible error taxonomy. Handlers map these to HTTP status codes
// in exactly one place; no other diagnostic detail leaves the server.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRefresh covers not-found, expired and revoked refresh
	// tokens without saying which. The caller must re-authenticate.
	ErrInvalidRefresh = errors.New("invalid or expired refresh token")

	// ErrAccessExpired signals the client to run the refresh flow rather
	// than a full re-login.
	ErrAccessExpired = errors.New("access token expired")

	// ErrUnauthenticated is the catch-all for missing, malformed or
	// otherwise unverifiable access tokens.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrQuotaExceeded is returned when a guest has no tries left.
	ErrQuotaExceeded = errors.New("guest quota exceeded")
)
