package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizdash/internal/domain"
)

func (s *Store) CreateUser(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (user_id, name, email, password_hash, created_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		user.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(
		ctx,
		`SELECT user_id, name, email, password_hash, created_at_unix FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)),
	))
}

func (s *Store) UserByID(ctx context.Context, id string) (domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(
		ctx,
		`SELECT user_id, name, email, password_hash, created_at_unix FROM users WHERE user_id = ?`,
		id,
	))
}

func (s *Store) scanUser(row *sql.Row) (domain.User, error) {
	var (
		user        domain.User
		createdUnix int64
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	user.CreatedAt = time.Unix(0, createdUnix).UTC()
	return user, nil
}
