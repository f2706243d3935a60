package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dwikikusuma/storefront/internal/user/app"
	"github.com/dwikikusuma/storefront/internal/user/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	userUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, app.ErrInvalidInput
	}
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, name, address, phone, created_at, updated_at
		 FROM users WHERE id = $1`,
		userUUID,
	))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, name, address, phone, created_at, updated_at
		 FROM users WHERE lower(email) = lower($1)`,
		email,
	))
}

func (r *UserRepo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var id uuid.UUID
	err := row.Scan(&id, &u.Email, &u.Name, &u.Address, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, errors.Wrap(err, "get user")
	}
	u.ID = id.String()
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, upd domain.ProfileUpdate) (domain.User, error) {
	userUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, app.ErrInvalidInput
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET name    = COALESCE($2::text, name),
		     address = COALESCE($3::text, address),
		     phone   = COALESCE($4::text, phone),
		     updated_at = now()
		 WHERE id = $1`,
		userUUID, upd.Name, upd.Address, upd.Phone,
	)
	if err != nil {
		return domain.User{}, errors.Wrap(err, "update user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.User{}, app.ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *UserRepo) StoreResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return app.ErrInvalidInput
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (token_hash, user_id, expires_at)
		 VALUES ($1, $2, $3)`,
		tokenHash, userUUID, expiresAt,
	)
	return errors.Wrap(err, "store reset token")
}

func (r *UserRepo) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	var userID uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`UPDATE password_reset_tokens
		 SET used_at = $2
		 WHERE token_hash = $1 AND used_at IS NULL AND expires_at > $2
		 RETURNING user_id`,
		tokenHash, now,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", app.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "consume reset token")
	}
	return userID.String(), nil
}

func (r *UserRepo) SetPasswordHash(ctx context.Context, userID string, passwordHash []byte) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return app.ErrInvalidInput
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userUUID, passwordHash,
	)
	return errors.Wrap(err, "set password hash")
}
