package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danyip/imperfectionary-be/domain"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func (r *PostgresRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	user := domain.User{Email: email}

	row := r.pool.QueryRow(ctx, "SELECT id, username, password_hash FROM users WHERE email = $1", email)

	err := row.Scan(&user.Id, &user.Username, &user.PasswordHash)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.User{}, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return user, nil
}

func (r *PostgresRepo) GetUserById(ctx context.Context, id string) (domain.User, error) {
	user := domain.User{Id: id}

	row := r.pool.QueryRow(ctx, "SELECT username, email, password_hash FROM users WHERE id = $1", id)

	err := row.Scan(&user.Username, &user.Email, &user.PasswordHash)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.User{}, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return user, nil
}

func (r *PostgresRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (string, error) {
	row := r.pool.QueryRow(ctx,
		"INSERT INTO users(username, email, password_hash) VALUES($1, $2, $3) RETURNING id",
		username, email, passwordHash)

	var id string
	err := row.Scan(&id)
	if err != nil {
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return "", uniqueErr
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}

		return "", fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	return id, nil
}

func (r *PostgresRepo) UpdateUser(ctx context.Context, id, username, email string) (domain.User, error) {
	row := r.pool.QueryRow(ctx,
		"UPDATE users SET username = $2, email = $3 WHERE id = $1 RETURNING id, username, email, password_hash",
		id, username, email)

	var user domain.User
	err := row.Scan(&user.Id, &user.Username, &user.Email, &user.PasswordHash)
	if err != nil {
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return domain.User{}, uniqueErr
		}

		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.User{}, domain.ErrUserNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.User{}, err
		default:
			return domain.User{}, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	return user, nil
}

// Generate fetches up to 'count' random words from the words table.
// Returns an empty slice if the query fails, so callers can fall back to a
// built-in vocabulary.
func (r *PostgresRepo) Generate(count int) []string {
	ctx := context.Background()

	query := `SELECT word FROM words ORDER BY RANDOM() LIMIT $1`

	rows, err := r.pool.Query(ctx, query, count)
	if err != nil {
		return []string{}
	}
	defer rows.Close()

	words := make([]string, 0, count)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			continue
		}
		words = append(words, word)
	}

	return words
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	// "23505" is the PostgreSQL error code for unique_violation
	if pgErr.Code != "23505" {
		return nil
	}

	if strings.Contains(pgErr.ConstraintName, "email") {
		return domain.ErrDuplicateEmail
	}
	return domain.ErrDuplicateUsername
}
