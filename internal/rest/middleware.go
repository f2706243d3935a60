package rest

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireSession resolves the caller's principal through the identity
// verifier and stores the user id on the request context. Handlers behind it
// never see an unauthenticated request.
func (h *Handlers) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		userID, err := h.verifier.Verify(r.Context(), token)
		if err != nil {
			h.respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return r.Header.Get("X-Session-Token")
}

func principal(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
