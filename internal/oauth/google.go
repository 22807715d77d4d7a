// Package oauth verifies federated identity tokens. Only Google is
// supported; verification goes through Google's tokeninfo endpoint so
// the server holds no JWKS state.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vidbrief/vidbrief-server/internal/service"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier resolves a Google ID token to a verified profile.
type GoogleVerifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:   clientID,
		endpoint:   tokenInfoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenInfo struct {
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

// VerifyIDToken validates the token with Google and returns the profile
// claims. Any failure is reported as a single opaque error; callers map
// it to invalid credentials.
func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (service.GoogleProfile, error) {
	endpoint := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return service.GoogleProfile{}, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return service.GoogleProfile{}, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return service.GoogleProfile{}, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return service.GoogleProfile{}, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if v.clientID != "" && info.Aud != v.clientID {
		return service.GoogleProfile{}, fmt.Errorf("tokeninfo audience mismatch")
	}
	if info.Sub == "" || info.Email == "" {
		return service.GoogleProfile{}, fmt.Errorf("tokeninfo response incomplete")
	}
	if info.EmailVerified != "true" {
		return service.GoogleProfile{}, fmt.Errorf("google email not verified")
	}

	return service.GoogleProfile{
		ID:    info.Sub,
		Email: info.Email,
		Name:  info.Name,
	}, nil
}
