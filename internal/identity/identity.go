// Package identity resolves the authenticated principal behind a session
// token. Authentication itself lives with the external identity provider;
// this package only asks it who the caller is.
package identity

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type Verifier interface {
	// Verify maps a session token to a stable user id, or
	// ErrUnauthenticated when the token is missing, expired, or unknown.
	Verify(ctx context.Context, token string) (string, error)
}

// StaticVerifier is a fixed token table for development and tests.
type StaticVerifier map[string]string

func (v StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	userID, ok := v[token]
	if !ok {
		return "", ErrUnauthenticated
	}
	return userID, nil
}
