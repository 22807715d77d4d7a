package model

import "errors"

// Access-token verification failures. Kept distinct so the gate can tell
// an expired token (client should refresh) from everything else (client
// must re-authenticate).
var (
	ErrTokenMalformed = errors.New("access token malformed")
	ErrTokenSignature = errors.New("access token signature invalid")
	ErrTokenExpired   = errors.New("access token expired")
)

// Refresh-token verification failures.
var (
	ErrRefreshNotFound = errors.New("refresh token not found")
	ErrRefreshExpired  = errors.New("refresh token expired")
)
