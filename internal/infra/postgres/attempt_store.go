package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizdash/internal/domain"
)

// AttemptStore persists completed attempts in Postgres with responses stored
// as JSONB alongside the denormalized attempt columns.
type AttemptStore struct {
	pool  *pgxpool.Pool
	newID func() string
	now   func() time.Time
}

func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool, newID: uuid.NewString, now: time.Now}
}

func (s *AttemptStore) Save(ctx context.Context, draft domain.AttemptDraft) (domain.Attempt, error) {
	attemptedAt := draft.AttemptedAt
	if attemptedAt.IsZero() {
		attemptedAt = s.now()
	}

	responses, err := json.Marshal(draft.Responses)
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("marshal responses: %w", err)
	}

	attempt := domain.Attempt{
		ID:             s.newID(),
		UserID:         draft.UserID,
		CategoryID:     draft.CategoryID,
		CategoryName:   draft.CategoryName,
		Score:          draft.Score,
		TotalQuestions: draft.TotalQuestions,
		CorrectAnswers: draft.CorrectAnswers,
		Responses:      draft.Responses,
		AttemptedAt:    attemptedAt.UTC(),
	}

	_, err = s.pool.Exec(
		ctx,
		`INSERT INTO attempts (attempt_id, user_id, category_id, category_name, score, total_questions, correct_answers, responses, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		attempt.ID,
		attempt.UserID,
		attempt.CategoryID,
		attempt.CategoryName,
		attempt.Score,
		attempt.TotalQuestions,
		attempt.CorrectAnswers,
		responses,
		attempt.AttemptedAt,
	)
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	return attempt, nil
}

func (s *AttemptStore) GetByID(ctx context.Context, id string) (domain.Attempt, error) {
	row := s.pool.QueryRow(
		ctx,
		`SELECT attempt_id, user_id, category_id, category_name, score, total_questions, correct_answers, responses, attempted_at
		 FROM attempts WHERE attempt_id=$1`,
		id,
	)
	attempt, err := scanAttempt(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Attempt{}, domain.ErrAttemptNotFound
	}
	return attempt, err
}

func (s *AttemptStore) ListByUser(ctx context.Context, userID string) ([]domain.Attempt, error) {
	rows, err := s.pool.Query(
		ctx,
		`SELECT attempt_id, user_id, category_id, category_name, score, total_questions, correct_answers, responses, attempted_at
		 FROM attempts WHERE user_id=$1
		 ORDER BY attempted_at DESC, attempt_id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.Attempt, 0)
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttempt(row rowScanner) (domain.Attempt, error) {
	var (
		attempt   domain.Attempt
		responses []byte
	)
	err := row.Scan(
		&attempt.ID,
		&attempt.UserID,
		&attempt.CategoryID,
		&attempt.CategoryName,
		&attempt.Score,
		&attempt.TotalQuestions,
		&attempt.CorrectAnswers,
		&responses,
		&attempt.AttemptedAt,
	)
	if err != nil {
		return domain.Attempt{}, err
	}
	if err := json.Unmarshal(responses, &attempt.Responses); err != nil {
		return domain.Attempt{}, fmt.Errorf("unmarshal responses: %w", err)
	}
	return attempt, nil
}
