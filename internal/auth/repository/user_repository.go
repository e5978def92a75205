package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/pkravets/huddle-auth/internal/auth/domain"
	"github.com/pkravets/huddle-auth/internal/common/db"
)

var ErrUserNotFound = pgx.ErrNoRows

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.User, error)
	Exists(ctx context.Context, field domain.Field, value string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash, handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Handle,
	)

	created := user
	err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err := db.HandleExecError(err, "create user", start); err != nil {
		return domain.User{}, err
	}
	return created, nil
}

// FindByIdentifier matches the identifier against username OR email. When the
// same value is a username on one row and an email on another, the first row
// the store returns wins; ordering is not part of the contract.
func (r *PgUserRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, handle, password_hash, created_at, updated_at
		 FROM users
		 WHERE username = $1 OR email = $1
		 LIMIT 1`,
		identifier,
	)

	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Handle,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by identifier", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgUserRepository) Exists(ctx context.Context, field domain.Field, value string) (bool, error) {
	column, err := columnFor(field)
	if err != nil {
		return false, err
	}

	start := time.Now()
	var exists bool
	// column comes from the fixed whitelist above; the value is always bound.
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM users WHERE %s = $1)`, column)
	err = r.pool.QueryRow(ctx, query, value).Scan(&exists)
	if err := db.HandleExecError(err, "check "+column+" exists", start); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete exists for test fixtures only; no operation in the service reaches it.
func (r *PgUserRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return db.HandleExecError(err, "delete user", start)
}

func columnFor(field domain.Field) (string, error) {
	switch field {
	case domain.FieldUsername:
		return "username", nil
	case domain.FieldEmail:
		return "email", nil
	case domain.FieldHandle:
		return "handle", nil
	default:
		return "", errors.New("unknown lookup field: " + string(field))
	}
}
