package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/storefront/internal/user/domain"
)

type UserRepo interface {
	Get(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, id string, upd domain.ProfileUpdate) (domain.User, error)

	// StoreResetToken records the hash of a single-use reset token.
	StoreResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ConsumeResetToken atomically marks an unused, unexpired token as used
	// and returns its owner. Returns ErrNotFound for anything else.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (string, error)

	SetPasswordHash(ctx context.Context, userID string, passwordHash []byte) error
}
