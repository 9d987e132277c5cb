package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"quizdash/internal/domain"
)

// Seed loads categories and questions into Postgres, skipping rows that
// already exist. It backs the seed CLI command and integration tests.
func Seed(ctx context.Context, db *bun.DB, categories []domain.Category, questions []domain.Question) error {
	for _, c := range categories {
		_, err := db.ExecContext(
			ctx,
			`INSERT INTO categories (category_id, name, description, color, icon)
			 VALUES (?, ?, ?, ?, ?) ON CONFLICT (category_id) DO NOTHING`,
			c.ID, c.Name, c.Description, c.Color, c.Icon,
		)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options for %s: %w", q.ID, err)
		}
		_, err = db.ExecContext(
			ctx,
			`INSERT INTO questions (question_id, category_id, question_text, options, correct_index)
			 VALUES (?, ?, ?, ?::jsonb, ?) ON CONFLICT (question_id) DO NOTHING`,
			q.ID, q.CategoryID, q.Text, string(options), q.CorrectAnswerIndex,
		)
		if err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}
	return nil
}
