package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{"tok": "user-1"}

	userID, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = v.Verify(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestHTTPVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"userId": "user-42"})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL)

	t.Run("valid token", func(t *testing.T) {
		userID, err := v.Verify(context.Background(), "good-token")
		require.NoError(t, err)
		assert.Equal(t, "user-42", userID)
	})

	t.Run("rejected token", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "bad-token")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("empty token short-circuits", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
