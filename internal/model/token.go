package model

import "github.com/google/uuid"

// AccessTokenManager signs and verifies self-contained access tokens.
// Verification is a pure function of the token string and the signing
// secret; it never touches storage.
type AccessTokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
}
