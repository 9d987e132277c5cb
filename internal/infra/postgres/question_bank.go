package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizdash/internal/domain"
)

// QuestionBank reads categories and questions from Postgres. Selection loads
// the whole category and shuffles in process; categories are small enough
// that pushing the permutation into SQL buys nothing.
type QuestionBank struct {
	pool *pgxpool.Pool

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{
		pool: pool,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *QuestionBank) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := b.pool.Query(ctx, `SELECT category_id, name, description, color, icon FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (b *QuestionBank) Category(ctx context.Context, categoryID string) (domain.Category, error) {
	var c domain.Category
	err := b.pool.QueryRow(
		ctx,
		`SELECT category_id, name, description, color, icon FROM categories WHERE category_id=$1`,
		categoryID,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("load category: %w", err)
	}
	return c, nil
}

func (b *QuestionBank) SelectQuestions(ctx context.Context, categoryID string, count int) ([]domain.Question, error) {
	if _, err := b.Category(ctx, categoryID); err != nil {
		return nil, err
	}

	rows, err := b.pool.Query(
		ctx,
		`SELECT question_id, category_id, question_text, options, correct_index FROM questions WHERE category_id=$1`,
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var (
			q       domain.Question
			options []byte
		)
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.Text, &options, &q.CorrectAnswerIndex); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	b.mu.Unlock()

	if count > 0 && count < len(questions) {
		questions = questions[:count]
	}
	return questions, nil
}
