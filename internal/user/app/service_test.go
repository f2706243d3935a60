package app

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/user/domain"
)

type storedToken struct {
	userID    string
	expiresAt time.Time
	used      bool
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]domain.User // by id
	tokens map[string]*storedToken
	hashes map[string][]byte
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[string]domain.User{},
		tokens: map[string]*storedToken{},
		hashes: map[string][]byte{},
	}
}

func (r *fakeUserRepo) addUser(email string) domain.User {
	u := domain.User{ID: uuid.NewString(), Email: email, Name: "Test User"}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Get(_ context.Context, id string) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id string, upd domain.ProfileUpdate) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	r.users[id] = u
	return u, nil
}

func (r *fakeUserRepo) StoreResetToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[tokenHash] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *fakeUserRepo) ConsumeResetToken(_ context.Context, tokenHash string, now time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tok, ok := r.tokens[tokenHash]
	if !ok || tok.used || !tok.expiresAt.After(now) {
		return "", ErrNotFound
	}
	tok.used = true
	return tok.userID, nil
}

func (r *fakeUserRepo) SetPasswordHash(_ context.Context, userID string, passwordHash []byte) error {
	r.hashes[userID] = passwordHash
	return nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []string // bodies
	to   []string
}

func (s *recordingSender) Send(_ context.Context, to, _, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.to = append(s.to, to)
	s.sent = append(s.sent, body)
	return nil
}

func newTestService(repo *fakeUserRepo, sender *recordingSender) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, sender, "http://store.local/reset", log)
}

func extractToken(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, "token=")
	require.GreaterOrEqual(t, idx, 0, "no token in mail body: %s", body)
	token := body[idx+len("token="):]
	if end := strings.IndexAny(token, " \n"); end >= 0 {
		token = token[:end]
	}
	return token
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &recordingSender{})

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordReset_FullFlow(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.addUser("buyer@example.com")
	sender := &recordingSender{}
	svc := newTestService(repo, sender)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "Buyer@Example.com"))
	require.Len(t, sender.to, 1)
	assert.Equal(t, user.Email, sender.to[0])

	token := extractToken(t, sender.sent[0])
	assert.Len(t, token, 64, "expected 32 random bytes hex encoded")

	// Raw token is never stored; only its hash is.
	_, rawStored := repo.tokens[token]
	assert.False(t, rawStored)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "new-password-1"))
	assert.NotEmpty(t, repo.hashes[user.ID])

	t.Run("token is single use", func(t *testing.T) {
		err := svc.ResetPassword(context.Background(), token, "another-password")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser("buyer@example.com")
	sender := &recordingSender{}
	svc := newTestService(repo, sender)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "buyer@example.com"))
	token := extractToken(t, sender.sent[0])

	svc.now = func() time.Time { return time.Now().Add(resetTokenTTL + time.Minute) }

	err := svc.ResetPassword(context.Background(), token, "new-password-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetPassword_WeakInput(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &recordingSender{})

	assert.ErrorIs(t, svc.ResetPassword(context.Background(), "", "new-password-1"), ErrInvalidInput)
	assert.ErrorIs(t, svc.ResetPassword(context.Background(), "sometoken", "short"), ErrInvalidInput)
}

func TestUpdateProfile_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.addUser("buyer@example.com")
	svc := newTestService(repo, &recordingSender{})

	t.Run("nothing to update", func(t *testing.T) {
		_, err := svc.UpdateProfile(context.Background(), user.ID, domain.ProfileUpdate{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty name", func(t *testing.T) {
		empty := "  "
		_, err := svc.UpdateProfile(context.Background(), user.ID, domain.ProfileUpdate{Name: &empty})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		addr := "12 Mall Road, Lahore"
		updated, err := svc.UpdateProfile(context.Background(), user.ID, domain.ProfileUpdate{Address: &addr})
		require.NoError(t, err)
		assert.Equal(t, addr, updated.Address)
		assert.Equal(t, user.Name, updated.Name)
	})
}
