package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief-server/internal/config"
)

func cookiesByName(res *http.Response) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range res.Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestWriter_SetSession(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writer := NewWriter(config.Cookie{Secure: true, Domain: "vidbrief.example.com", SameSite: "strict", HTTPOnly: true},
		15*time.Minute, 7*24*time.Hour)

	writer.SetSession(w, "access-value", "refresh-value")

	cookies := cookiesByName(w.Result())
	require.Len(t, cookies, 2)

	access := cookies[AccessName]
	require.NotNil(t, access)
	assert.Equal(t, "access-value", access.Value)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.Equal(t, "/", access.Path)

	refresh := cookies[RefreshName]
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-value", refresh.Value)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), refresh.MaxAge)
	assert.True(t, refresh.HttpOnly)
}

func TestWriter_SetAccess_LeavesRefreshAlone(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writer := NewWriter(config.Cookie{SameSite: "lax", HTTPOnly: true}, 15*time.Minute, 7*24*time.Hour)

	writer.SetAccess(w, "new-access")

	cookies := cookiesByName(w.Result())
	require.Len(t, cookies, 1)
	require.NotNil(t, cookies[AccessName])
	assert.Nil(t, cookies[RefreshName])
}

func TestWriter_ClearSession(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writer := NewWriter(config.Cookie{SameSite: "lax", HTTPOnly: true}, 15*time.Minute, 7*24*time.Hour)

	writer.ClearSession(w)

	cookies := cookiesByName(w.Result())
	require.Len(t, cookies, 2)
	assert.Equal(t, -1, cookies[AccessName].MaxAge)
	assert.Equal(t, -1, cookies[RefreshName].MaxAge)
	assert.Empty(t, cookies[AccessName].Value)
	assert.Empty(t, cookies[RefreshName].Value)
}

func TestWriter_SameSiteMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  http.SameSite
	}{
		{value: "strict", want: http.SameSiteStrictMode},
		{value: "none", want: http.SameSiteNoneMode},
		{value: "lax", want: http.SameSiteLaxMode},
		{value: "", want: http.SameSiteLaxMode},
		{value: "garbage", want: http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		writer := NewWriter(config.Cookie{SameSite: tt.value}, time.Minute, time.Hour)
		assert.Equal(t, tt.want, writer.sameSite(), "value %q", tt.value)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: AccessName, Value: "the-token"})

	assert.Equal(t, "the-token", Read(r, AccessName))
	assert.Empty(t, Read(r, RefreshName))
}
