package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// HTTPVerifier introspects session tokens against the identity provider.
type HTTPVerifier struct {
	base   string
	client *http.Client
}

func NewHTTPVerifier(baseURL string) *HTTPVerifier {
	return &HTTPVerifier{
		base: baseURL,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.base+"/sessions/verify", nil)
	if err != nil {
		return "", errors.Wrap(err, "build introspection request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "introspect session")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrUnauthenticated
	default:
		return "", errors.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "decode introspection response")
	}
	if body.UserID == "" {
		return "", ErrUnauthenticated
	}
	return body.UserID, nil
}
