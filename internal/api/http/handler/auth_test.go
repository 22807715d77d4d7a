package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief-server/internal/api/http/cookie"
	"github.com/vidbrief/vidbrief-server/internal/api/http/reqcontext"
	"github.com/vidbrief/vidbrief-server/internal/config"
	"github.com/vidbrief/vidbrief-server/internal/mocks"
	"github.com/vidbrief/vidbrief-server/internal/model"
	"github.com/vidbrief/vidbrief-server/internal/repository/memory"
	"github.com/vidbrief/vidbrief-server/internal/service"
	"github.com/vidbrief/vidbrief-server/internal/testutil"
	"github.com/vidbrief/vidbrief-server/internal/token"
)

type authFixture struct {
	handler  *Auth
	sessions *service.Session
	google   *mocks.GoogleVerifier
	users    *memory.UserStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := memory.NewUserStore()
	refreshes := memory.NewRefreshTokenStore()
	manager := token.NewJWT("test-secret", 15*time.Minute)
	tokens := service.NewTokenService(manager, refreshes, 7*24*time.Hour, testutil.MakeNoopLogger())
	sessions := service.NewSession(users, tokens, testutil.MakeNoopLogger())
	google := &mocks.GoogleVerifier{}
	cookies := cookie.NewWriter(config.Cookie{SameSite: "lax", HTTPOnly: true}, 15*time.Minute, 7*24*time.Hour)

	return &authFixture{
		handler:  NewAuth(sessions, google, cookies, testutil.MakeNoopLogger()),
		sessions: sessions,
		google:   google,
		users:    users,
	}
}

func sessionCookies(t *testing.T, res *http.Response) (access, refresh *http.Cookie) {
	t.Helper()

	for _, c := range res.Cookies() {
		switch c.Name {
		case cookie.AccessName:
			access = c
		case cookie.RefreshName:
			refresh = c
		}
	}
	return access, refresh
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	body := `{"email":"alice@example.com","password":"password123","name":"Alice"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	f.handler.Register(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User model.UserSummary `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.User.Email)

	access, refresh := sessionCookies(t, w.Result())
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.NotEmpty(t, access.Value)
	assert.Len(t, refresh.Value, 64)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
}

func TestAuth_Register_Validation(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "missing email", body: `{"password":"password123"}`},
		{name: "short password", body: `{"email":"alice@example.com","password":"short"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			f.handler.Register(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	body := `{"email":"alice@example.com","password":"password123"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	f.handler.Register(httptest.NewRecorder(), r)

	r = httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	f.handler.Register(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	register := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"password123"}`))
	f.handler.Register(httptest.NewRecorder(), register)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"password123"}`))
	w := httptest.NewRecorder()

	f.handler.Login(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	access, refresh := sessionCookies(t, w.Result())
	require.NotNil(t, access)
	require.NotNil(t, refresh)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"password123"}`))
	w := httptest.NewRecorder()

	f.handler.Login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestAuth_Google(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	f.google.On("VerifyIDToken", mock.Anything, "good-token").
		Return(service.GoogleProfile{ID: "google-1", Email: "alice@example.com", Name: "Alice"}, nil).Once()

	r := httptest.NewRequest(http.MethodPost, "/api/auth/google",
		strings.NewReader(`{"id_token":"good-token"}`))
	w := httptest.NewRecorder()

	f.handler.Google(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User model.UserSummary `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.AuthProviderGoogle, resp.User.AuthProvider)
}

func TestAuth_Google_BadToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	f.google.On("VerifyIDToken", mock.Anything, "bad-token").
		Return(service.GoogleProfile{}, assert.AnError).Once()

	r := httptest.NewRequest(http.MethodPost, "/api/auth/google",
		strings.NewReader(`{"id_token":"bad-token"}`))
	w := httptest.NewRecorder()

	f.handler.Google(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	register := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"password123"}`))
	registerRec := httptest.NewRecorder()
	f.handler.Register(registerRec, register)
	_, refresh := sessionCookies(t, registerRec.Result())
	require.NotNil(t, refresh)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	r.AddCookie(refresh)
	w := httptest.NewRecorder()

	f.handler.Refresh(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	access, newRefresh := sessionCookies(t, w.Result())
	require.NotNil(t, access)
	assert.NotEmpty(t, access.Value)
	// The refresh credential is not rotated.
	assert.Nil(t, newRefresh)
}

func TestAuth_Refresh_MissingCookie(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	w := httptest.NewRecorder()

	f.handler.Refresh(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Logout_RevokesAndClears(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	register := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"password123"}`))
	registerRec := httptest.NewRecorder()
	f.handler.Register(registerRec, register)
	_, refresh := sessionCookies(t, registerRec.Result())
	require.NotNil(t, refresh)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.AddCookie(refresh)
	w := httptest.NewRecorder()

	f.handler.Logout(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	access, cleared := sessionCookies(t, w.Result())
	require.NotNil(t, access)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, access.MaxAge)
	assert.Equal(t, -1, cleared.MaxAge)

	// The revoked value no longer refreshes.
	retry := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	retry.AddCookie(refresh)
	retryRec := httptest.NewRecorder()
	f.handler.Refresh(retryRec, retry)
	assert.Equal(t, http.StatusUnauthorized, retryRec.Code)
}

func TestAuth_Logout_WithoutCookieStillSucceeds(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()

	f.handler.Logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_Me(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	identity := model.UserSummary{Email: "alice@example.com", Name: "Alice"}

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r = r.WithContext(reqcontext.WithIdentity(r.Context(), identity))
	w := httptest.NewRecorder()

	f.handler.Me(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestAuth_Me_Unauthenticated(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()

	f.handler.Me(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
