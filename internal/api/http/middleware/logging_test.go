package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidbrief/vidbrief-server/internal/testutil"
)

func TestLogging_PassesThrough(t *testing.T) {
	t.Parallel()

	m := NewLogging(testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	r := httptest.NewRequest(http.MethodGet, "/api/summaries", nil)
	w := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short and stout", w.Body.String())
}

func TestLogging_DefaultStatusIsOK(t *testing.T) {
	t.Parallel()

	m := NewLogging(testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
