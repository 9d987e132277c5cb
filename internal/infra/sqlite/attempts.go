package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizdash/internal/domain"
)

// Save assigns identity and a timestamp (when the draft carries none) and
// persists the full record in one statement. Attempts are write-once; there
// is no update path.
func (s *Store) Save(ctx context.Context, draft domain.AttemptDraft) (domain.Attempt, error) {
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
		AttemptedAt:    attemptedAt,
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO attempts (attempt_id, user_id, category_id, category_name, score, total_questions, correct_answers, responses_json, attempted_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		attempt.UserID,
		attempt.CategoryID,
		attempt.CategoryName,
		attempt.Score,
		attempt.TotalQuestions,
		attempt.CorrectAnswers,
		string(responses),
		attemptedAt.UTC().UnixNano(),
	)
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	return attempt, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.Attempt, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT attempt_id, user_id, category_id, category_name, score, total_questions, correct_answers, responses_json, attempted_at_unix
		 FROM attempts WHERE attempt_id = ?`,
		id,
	)
	attempt, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Attempt{}, domain.ErrAttemptNotFound
	}
	return attempt, err
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Attempt, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT attempt_id, user_id, category_id, category_name, score, total_questions, correct_answers, responses_json, attempted_at_unix
		 FROM attempts WHERE user_id = ?
		 ORDER BY attempted_at_unix DESC, attempt_id DESC`,
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
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (domain.Attempt, error) {
	var (
		attempt       domain.Attempt
		responsesJSON string
		attemptedUnix int64
	)
	err := row.Scan(
		&attempt.ID,
		&attempt.UserID,
		&attempt.CategoryID,
		&attempt.CategoryName,
		&attempt.Score,
		&attempt.TotalQuestions,
		&attempt.CorrectAnswers,
		&responsesJSON,
		&attemptedUnix,
	)
	if err != nil {
		return domain.Attempt{}, err
	}
	if err := json.Unmarshal([]byte(responsesJSON), &attempt.Responses); err != nil {
		return domain.Attempt{}, fmt.Errorf("unmarshal responses: %w", err)
	}
	attempt.AttemptedAt = time.Unix(0, attemptedUnix).UTC()
	return attempt, nil
}
