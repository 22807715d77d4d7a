// Package cookie implements the cookie transport for the two credential
// classes: a short-lived access cookie and a long-lived refresh cookie.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/vidbrief/vidbrief-server/internal/config"
)

// Cookie names for the two credential classes.
const (
	AccessName  = "access_token"
	RefreshName = "refresh_token"
)

// Writer applies the configured attributes to auth cookies. Both
// cookies are HttpOnly by default; Secure and SameSite come from
// configuration so local development works over plain HTTP.
type Writer struct {
	cfg        config.Cookie
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewWriter(cfg config.Cookie, accessTTL, refreshTTL time.Duration) *Writer {
	return &Writer{cfg: cfg, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// SetSession writes both credential cookies.
func (c *Writer) SetSession(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, c.build(AccessName, access, c.accessTTL))
	http.SetCookie(w, c.build(RefreshName, refresh, c.refreshTTL))
}

// SetAccess rewrites only the access cookie, leaving the refresh cookie
// untouched. Used by the refresh flow, which does not rotate the
// refresh credential.
func (c *Writer) SetAccess(w http.ResponseWriter, access string) {
	http.SetCookie(w, c.build(AccessName, access, c.accessTTL))
}

// ClearSession expires both cookies immediately.
func (c *Writer) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, c.expired(AccessName))
	http.SetCookie(w, c.expired(RefreshName))
}

func (c *Writer) build(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.cfg.Domain,
		MaxAge:   int(ttl.Seconds()),
		Secure:   c.cfg.Secure,
		HttpOnly: c.cfg.HTTPOnly,
		SameSite: c.sameSite(),
	}
}

func (c *Writer) expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.cfg.Domain,
		MaxAge:   -1,
		Secure:   c.cfg.Secure,
		HttpOnly: c.cfg.HTTPOnly,
		SameSite: c.sameSite(),
	}
}

func (c *Writer) sameSite() http.SameSite {
	switch strings.ToLower(c.cfg.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Read returns the value of the named cookie, or empty.
func Read(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
