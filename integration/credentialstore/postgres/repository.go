package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tasktrackr/core/credential"
	"github.com/dmitrymomot/tasktrackr/integration/database/pg"
)

// Migrations holds the schema owned by this repository.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the files.
const MigrationsDir = "migrations"

const (
	insertUser    = `INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	selectByEmail = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	selectByID    = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	deleteByID    = `DELETE FROM users WHERE id = $1`
)

// Repository is a credential.Repository backed by the users table.
// Email uniqueness is enforced by the users_email_key unique index.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository over pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Migrate applies the users schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, Migrations, MigrationsDir, cfg, log)
}

func (r *Repository) Insert(ctx context.Context, user credential.User) error {
	_, err := pg.Conn(ctx, r.pool).Exec(ctx, insertUser, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	switch {
	case err == nil:
		return nil
	case pg.IsDuplicateKeyError(err):
		return credential.ErrDuplicateUser
	default:
		return fmt.Errorf("insert user: %w", err)
	}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (credential.User, error) {
	return r.get(ctx, selectByEmail, email)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (credential.User, error) {
	return r.get(ctx, selectByID, id)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := pg.Conn(ctx, r.pool).Exec(ctx, deleteByID, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *Repository) get(ctx context.Context, query string, arg any) (credential.User, error) {
	var u credential.User
	err := pg.Conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	switch {
	case err == nil:
		u.CreatedAt = u.CreatedAt.UTC()
		return u, nil
	case pg.IsNotFoundError(err):
		return credential.User{}, credential.ErrNotFound
	default:
		return credential.User{}, fmt.Errorf("select user: %w", err)
	}
}
