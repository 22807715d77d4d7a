package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
	"github.com/vidbrief/vidbrief-server/internal/token"
)

// TokenService provides high-level operations for minting, verifying and
// revoking tokens. Access tokens are self-contained and never persisted;
// refresh tokens are opaque random values whose only source of truth is
// the RefreshTokenStore. The asymmetry keeps the hot access-token path
// free of I/O while keeping the refresh path revocable.
type TokenService struct {
	manager    model.AccessTokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

func NewTokenService(manager model.AccessTokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// MintAccess creates a signed short-lived access token for the user.
func (s *TokenService) MintAccess(userID uuid.UUID) (string, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("mint access: %w", err)
	}
	return access, nil
}

// MintRefresh generates an opaque refresh token and persists it. If the
// store write fails the value is discarded and the caller must not treat
// the user as logged in.
func (s *TokenService) MintRefresh(ctx context.Context, userID uuid.UUID) (string, error) {
	value, err := token.NewOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("mint refresh: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		Value:     value,
		UserID:    userID,
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return "", fmt.Errorf("persist refresh: %w", err)
	}

	return value, nil
}

// Issue mints a full access/refresh pair for a user.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	access, err := s.MintAccess(userID)
	if err != nil {
		return "", "", err
	}

	refresh, err := s.MintRefresh(ctx, userID)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// VerifyAccess validates an access token and returns its subject. Pure
// computation, no store access.
func (s *TokenService) VerifyAccess(tokenString string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(tokenString)
}

// VerifyRefresh resolves an opaque refresh value to its stored record in
// a single read. An expired record fails with ErrRefreshExpired and is
// deleted lazily; the deletion is best-effort and never masks the result.
func (s *TokenService) VerifyRefresh(ctx context.Context, value string) (model.RefreshToken, error) {
	rt, err := s.store.GetByValue(ctx, value)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.RefreshToken{}, model.ErrRefreshNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("get refresh token: %w", err)
	}

	if rt.Expired(s.now()) {
		if err := s.store.DeleteByValue(ctx, value); err != nil {
			s.logger.Warn("failed to delete expired refresh token", "error", err.Error())
		}
		return model.RefreshToken{}, model.ErrRefreshExpired
	}

	return rt, nil
}

// Revoke deletes a refresh token by value. Deleting a value that does
// not exist is not an error.
func (s *TokenService) Revoke(ctx context.Context, value string) error {
	if err := s.store.DeleteByValue(ctx, value); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAll deletes every refresh token owned by the user.
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens for user: %w", err)
	}
	return nil
}

// CleanupExpired purges refresh tokens past their expiry. Called from
// the maintenance loop.
func (s *TokenService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("cleanup expired refresh tokens: %w", err)
	}
	return n, nil
}
