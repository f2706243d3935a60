package app

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dwikikusuma/storefront/internal/notify"
	"github.com/dwikikusuma/storefront/internal/user/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const resetTokenTTL = 30 * time.Minute

type Service struct {
	repo      UserRepo
	sender    notify.Sender
	linkBase  string
	log       *slog.Logger
	now       func() time.Time
	randToken func() (string, error)
}

func NewService(repo UserRepo, sender notify.Sender, linkBase string, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sender:    sender,
		linkBase:  linkBase,
		log:       log,
		now:       time.Now,
		randToken: newResetToken,
	}
}

func (s *Service) GetProfile(ctx context.Context, id string) (domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return domain.User{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return domain.User{}, ErrInvalidInput
	}
	if upd.Name == nil && upd.Address == nil && upd.Phone == nil {
		return domain.User{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return domain.User{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, upd)
}

// RequestPasswordReset issues a single-use, time-bounded token and mails the
// reset link. Only the token's hash is stored. Mail failure is logged, not
// returned: the token stays valid and the user can retry.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.randToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := s.now().Add(resetTokenTTL)
	if err := s.repo.StoreResetToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s", s.linkBase, token)
	body := fmt.Sprintf("Click the link to reset your password: %s\nThe link expires in 30 minutes.", link)
	if err := s.sender.Send(ctx, user.Email, "Password reset request", body); err != nil {
		s.log.Warn("reset mail send failed", slog.String("user_id", user.ID), slog.Any("err", err))
	}
	return nil
}

// ResetPassword consumes the token and stores the new password hash. Reusing
// a token, or using one past its expiry, is ErrNotFound.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || len(newPassword) < 8 {
		return ErrInvalidInput
	}

	userID, err := s.repo.ConsumeResetToken(ctx, hashToken(token), s.now())
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.SetPasswordHash(ctx, userID, hash)
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
