package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/domain/repository"
)

// DBPool is the subset of pgxpool.Pool the storage relies on. Tests
// substitute a pgxmock pool through the same interface.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DBPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type messageRepository struct {
	storage *Storage
}

type secretRepository struct {
	storage *Storage
}

// newPgxPool is swapped in tests to substitute a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DBPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// NewWithPool wraps an existing pool without schema initialization.
func NewWithPool(pool DBPool, logger *slog.Logger) *Storage {
	return &Storage{pool: pool, logger: logger}
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Messages() repository.MessageRepository {
	return &messageRepository{storage: s}
}

func (s *Storage) Secrets() repository.SecretRepository {
	return &secretRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            membership_status BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            body TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS credentials (
            id SERIAL PRIMARY KEY,
            secret_key TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, firstName, lastName, username, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (first_name, last_name, username, password_hash)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, firstName, lastName, username, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Username = username
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, first_name, last_name, username, password_hash, membership_status, created_at
                   FROM users WHERE username=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &u.Member, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, first_name, last_name, username, password_hash, membership_status, created_at
                   FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &u.Member, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) MembershipStatus(ctx context.Context, username string) (bool, error) {
	const query = `SELECT membership_status FROM users WHERE username=$1`
	var member bool
	err := r.storage.pool.QueryRow(ctx, query, username).Scan(&member)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domainErrors.ErrNotFound
		}
		return false, err
	}
	return member, nil
}

// GrantMembership flips the flag with a single conditional statement, so
// concurrent grants for the same user succeed for exactly one caller.
func (r *userRepository) GrantMembership(ctx context.Context, username string) (bool, error) {
	const query = `UPDATE users SET membership_status=TRUE WHERE username=$1 AND NOT membership_status`
	tag, err := r.storage.pool.Exec(ctx, query, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	const query = `DELETE FROM users WHERE username=$1`
	tag, err := r.storage.pool.Exec(ctx, query, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- MessageRepository implementation ---

func (r *messageRepository) Create(ctx context.Context, userID int64, title, body string) (*model.Message, error) {
	const query = `INSERT INTO messages (user_id, title, body) VALUES ($1, $2, $3) RETURNING id, created_at`
	var m model.Message
	err := r.storage.pool.QueryRow(ctx, query, userID, title, body).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.UserID = userID
	m.Title = title
	m.Body = body
	return &m, nil
}

func (r *messageRepository) List(ctx context.Context) ([]model.Message, error) {
	const query = `SELECT m.id, m.user_id, m.title, m.body, m.created_at,
                          u.first_name || ' ' || u.last_name
                   FROM messages m
                   JOIN users u ON u.id = m.user_id
                   ORDER BY m.created_at DESC, m.id DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Body, &m.CreatedAt, &m.Author); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *messageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	const query = `DELETE FROM messages WHERE id IN (
                       SELECT id FROM messages WHERE created_at < $1 ORDER BY created_at LIMIT $2
                   )`
	tag, err := r.storage.pool.Exec(ctx, query, cutoff, limit)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- SecretRepository implementation ---

func (r *secretRepository) Get(ctx context.Context) (string, error) {
	const query = `SELECT secret_key FROM credentials ORDER BY id LIMIT 1`
	var secret string
	err := r.storage.pool.QueryRow(ctx, query).Scan(&secret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return secret, nil
}

// Seed inserts the passphrase only when the table is empty, so an
// operator-rotated value is never overwritten on restart.
func (r *secretRepository) Seed(ctx context.Context, secret string) error {
	const query = `INSERT INTO credentials (secret_key)
                   SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM credentials)`
	_, err := r.storage.pool.Exec(ctx, query, secret)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	if s.pool == nil {
		return errors.New("storage is not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes raw connection pool for advanced use.
func (s *Storage) Pool() DBPool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
