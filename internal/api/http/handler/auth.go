package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vidbrief/vidbrief-server/internal/api/http/cookie"
	"github.com/vidbrief/vidbrief-server/internal/api/http/reqcontext"
	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
	"github.com/vidbrief/vidbrief-server/internal/service"
)

// GoogleVerifier resolves a federated ID token to a verified profile.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (service.GoogleProfile, error)
}

// Auth exposes the session flows over JSON. Credentials travel as
// cookies; response bodies carry only the identity summary.
type Auth struct {
	sessions *service.Session
	google   GoogleVerifier
	cookies  *cookie.Writer
	logger   *logger.Logger
}

func NewAuth(sessions *service.Session, google GoogleVerifier, cookies *cookie.Writer, logger *logger.Logger) *Auth {
	return &Auth{sessions: sessions, google: google, cookies: cookies, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	IDToken string `json:"id_token"`
}

type sessionResponse struct {
	User model.UserSummary `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Email) == "" || len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and a password of at least 8 characters are required"})
		return
	}

	pair, user, err := h.sessions.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	h.cookies.SetSession(w, pair.Access, pair.Refresh)
	writeJSON(w, http.StatusCreated, sessionResponse{User: user})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	pair, user, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	h.cookies.SetSession(w, pair.Access, pair.Refresh)
	writeJSON(w, http.StatusOK, sessionResponse{User: user})
}

// Google handles POST /api/auth/google.
func (h *Auth) Google(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	profile, err := h.google.VerifyIDToken(r.Context(), req.IDToken)
	if err != nil {
		h.logger.Info("google token verification failed", "error", err.Error())
		WriteError(w, h.logger, model.ErrInvalidCredentials)
		return
	}

	pair, user, err := h.sessions.GoogleAuth(r.Context(), profile)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	h.cookies.SetSession(w, pair.Access, pair.Refresh)
	writeJSON(w, http.StatusOK, sessionResponse{User: user})
}

// Refresh handles POST /api/auth/refresh. Only the access cookie is
// rewritten; the refresh credential stays as issued.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshValue := cookie.Read(r, cookie.RefreshName)
	if refreshValue == "" {
		WriteError(w, h.logger, model.ErrInvalidRefresh)
		return
	}

	access, user, err := h.sessions.Refresh(r.Context(), refreshValue)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	h.cookies.SetAccess(w, access)
	writeJSON(w, http.StatusOK, sessionResponse{User: user})
}

// Logout handles POST /api/auth/logout. Revocation is durable before
// the response is written; the response itself always succeeds.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context(), cookie.Read(r, cookie.RefreshName))
	h.cookies.ClearSession(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// LogoutAll handles POST /api/auth/logout-all. Requires authentication.
func (h *Auth) LogoutAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := reqcontext.Identity(r.Context())
	if !ok {
		WriteError(w, h.logger, model.ErrUnauthenticated)
		return
	}

	h.sessions.LogoutAll(r.Context(), identity.ID)
	h.cookies.ClearSession(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out everywhere"})
}

// Me handles GET /api/auth/me.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := reqcontext.Identity(r.Context())
	if !ok {
		WriteError(w, h.logger, model.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: identity})
}
