package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ragavan2104/mailblaster/pkg/db"
)

// Repository persists admins.
type Repository interface {
	Create(ctx context.Context, a Admin) error
	FindByUsername(ctx context.Context, username string) (Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (Admin, error)
}

// PGRepository is the Postgres Repository.
type PGRepository struct {
	db db.Querier
}

// NewRepository creates a PGRepository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

const (
	insertAdmin = `INSERT INTO admins (id, username, password_hash, email, created_at)
VALUES ($1, $2, $3, $4, $5)`
	selectAdmin = `SELECT id, username, password_hash, email, created_at FROM admins`
)

// Create inserts a. A duplicate username is ErrUsernameTaken and leaves the
// existing row untouched.
func (r *PGRepository) Create(ctx context.Context, a Admin) error {
	_, err := r.db.Exec(ctx, insertAdmin, a.ID, a.Username, a.PasswordHash, a.Email, a.CreatedAt)
	if err != nil {
		return classify(err, ErrUsernameTaken)
	}
	return nil
}

func (r *PGRepository) FindByUsername(ctx context.Context, username string) (Admin, error) {
	return r.scan(ctx, selectAdmin+` WHERE username = $1`, username)
}

func (r *PGRepository) FindByID(ctx context.Context, id uuid.UUID) (Admin, error) {
	return r.scan(ctx, selectAdmin+` WHERE id = $1`, id)
}

func (r *PGRepository) scan(ctx context.Context, query string, arg any) (Admin, error) {
	var a Admin
	err := r.db.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.CreatedAt)
	if err != nil {
		return Admin{}, classify(err, nil)
	}
	return a, nil
}

// classify maps driver errors onto package sentinels.
func classify(err, onConflict error) error {
	switch {
	case db.IsNotFound(err):
		return ErrAdminNotFound
	case onConflict != nil && db.IsUniqueViolation(err):
		return onConflict
	case db.IsUnavailable(err):
		return errors.Join(ErrStorageUnavailable, err)
	}
	return err
}
