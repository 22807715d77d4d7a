package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
)

// dummyPasswordHash is compared against when the email is unknown so the
// failure path costs the same as a real password check. Both failure
// modes collapse into ErrInvalidCredentials.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// TokenPair carries a freshly minted access/refresh credential pair.
type TokenPair struct {
	Access  string
	Refresh string
}

// GoogleProfile is the verified profile returned by the OAuth
// collaborator. Verification of the federated token itself happens
// upstream; the session manager only links or creates the account.
type GoogleProfile struct {
	ID    string
	Email string
	Name  string
}

// Session orchestrates login, registration, OAuth linking, refresh and
// logout against the user store and the token service.
type Session struct {
	users  model.UserStore
	tokens *TokenService
	logger *logger.Logger
}

func NewSession(users model.UserStore, tokens *TokenService, logger *logger.Logger) *Session {
	return &Session{users: users, tokens: tokens, logger: logger}
}

// Register creates an email/password account and logs it in.
func (s *Session) Register(ctx context.Context, email, password, name string) (TokenPair, model.UserSummary, error) {
	email = normalizeEmail(email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return TokenPair{}, model.UserSummary{}, fmt.Errorf("get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		return TokenPair{}, model.UserSummary{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return TokenPair{}, model.UserSummary{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		AuthProvider: model.AuthProviderEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return TokenPair{}, model.UserSummary{}, model.ErrEmailTaken
		}
		return TokenPair{}, model.UserSummary{}, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return TokenPair{}, model.UserSummary{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return pair, user.Summary(), nil
}

// Login validates email/password credentials and issues a token pair.
// Unknown email and wrong password are indistinguishable to the caller
// and take comparable time.
func (s *Session) Login(ctx context.Context, email, password string) (TokenPair, model.UserSummary, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Burn a hash comparison so this path is not
			// observably faster than a wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return TokenPair{}, model.UserSummary{}, model.ErrInvalidCredentials
		}
		return TokenPair{}, model.UserSummary{}, fmt.Errorf("get user by email: %w", err)
	}

	// Federated accounts have no local password.
	if user.AuthProvider != model.AuthProviderEmail || len(user.PasswordHash) == 0 {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return TokenPair{}, model.UserSummary{}, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return TokenPair{}, model.UserSummary{}, model.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return TokenPair{}, model.UserSummary{}, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return pair, user.Summary(), nil
}

// GoogleAuth signs in a verified Google profile. An account is resolved
// by federated ID first, then linked by email, then created.
func (s *Session) GoogleAuth(ctx context.Context, profile GoogleProfile) (TokenPair, model.UserSummary, error) {
	user, err := s.users.GetByGoogleID(ctx, profile.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return TokenPair{}, model.UserSummary{}, fmt.Errorf("get user by google id: %w", err)
	}

	if user.ID == uuid.Nil {
		user, err = s.linkOrCreateGoogleUser(ctx, profile)
		if err != nil {
			return TokenPair{}, model.UserSummary{}, err
		}
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return TokenPair{}, model.UserSummary{}, err
	}

	s.logger.Info("user logged in via google", "user_id", user.ID)

	return pair, user.Summary(), nil
}

func (s *Session) linkOrCreateGoogleUser(ctx context.Context, profile GoogleProfile) (model.User, error) {
	email := normalizeEmail(profile.Email)
	googleID := profile.ID

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}

	if existing.ID != uuid.Nil {
		existing.GoogleID = &googleID
		existing.AuthProvider = model.AuthProviderGoogle
		updated, err := s.users.Update(ctx, existing)
		if err != nil {
			return model.User{}, fmt.Errorf("link google account: %w", err)
		}
		return updated, nil
	}

	now := time.Now()
	created, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         profile.Name,
		AuthProvider: model.AuthProviderGoogle,
		GoogleID:     &googleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("create google user: %w", err)
	}
	return created, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh value itself is not rotated: the same value stays valid until
// its own expiry or an explicit logout.
func (s *Session) Refresh(ctx context.Context, refreshValue string) (string, model.UserSummary, error) {
	rt, err := s.tokens.VerifyRefresh(ctx, refreshValue)
	if err != nil {
		if errors.Is(err, model.ErrRefreshNotFound) || errors.Is(err, model.ErrRefreshExpired) {
			return "", model.UserSummary{}, model.ErrInvalidRefresh
		}
		return "", model.UserSummary{}, err
	}

	user, err := s.users.GetByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Account deleted after the token was issued.
			return "", model.UserSummary{}, model.ErrInvalidRefresh
		}
		return "", model.UserSummary{}, fmt.Errorf("get user by id: %w", err)
	}

	access, err := s.tokens.MintAccess(user.ID)
	if err != nil {
		return "", model.UserSummary{}, err
	}

	return access, user.Summary(), nil
}

// Logout revokes a single refresh token. The operation always succeeds
// from the caller's point of view; a failed store delete is logged and
// bounded by the access token's natural expiry.
func (s *Session) Logout(ctx context.Context, refreshValue string) {
	if refreshValue == "" {
		return
	}
	if err := s.tokens.Revoke(ctx, refreshValue); err != nil {
		s.logger.Error("logout: failed to revoke refresh token", "error", err.Error())
	}
}

// LogoutAll revokes every refresh token for the user, with the same
// best-effort guarantee as Logout.
func (s *Session) LogoutAll(ctx context.Context, userID uuid.UUID) {
	if err := s.tokens.RevokeAll(ctx, userID); err != nil {
		s.logger.Error("logout all: failed to revoke refresh tokens",
			"user_id", userID,
			"error", err.Error())
	}
}

// Profile returns the identity summary for an authenticated user.
func (s *Session) Profile(ctx context.Context, userID uuid.UUID) (model.UserSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UserSummary{}, model.ErrUnauthenticated
		}
		return model.UserSummary{}, fmt.Errorf("get user by id: %w", err)
	}
	return user.Summary(), nil
}

func (s *Session) issuePair(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
	access, refresh, err := s.tokens.Issue(ctx, userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
