package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quizdash/internal/domain"
)

// QuestionBank serves categories and questions from an in-memory catalog.
// It backs tests and the zero-config dev setup; Postgres replaces it when a
// database URL is configured.
type QuestionBank struct {
	categories []domain.Category
	byCategory map[string][]domain.Question

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(categories []domain.Category, questions []domain.Question) *QuestionBank {
	return NewQuestionBankWithRand(categories, questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionBankWithRand takes an explicit source so selection order is
// reproducible in tests.
func NewQuestionBankWithRand(categories []domain.Category, questions []domain.Question, rnd *rand.Rand) *QuestionBank {
	byCategory := make(map[string][]domain.Question)
	for _, q := range questions {
		byCategory[q.CategoryID] = append(byCategory[q.CategoryID], q)
	}
	return &QuestionBank{
		categories: categories,
		byCategory: byCategory,
		rnd:        rnd,
	}
}

func (b *QuestionBank) ListCategories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(b.categories))
	copy(out, b.categories)
	return out, nil
}

func (b *QuestionBank) Category(_ context.Context, categoryID string) (domain.Category, error) {
	for _, c := range b.categories {
		if c.ID == categoryID {
			return c, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

// SelectQuestions shuffles the category's questions with Fisher-Yates and
// truncates to count. Fewer matches than count returns everything.
func (b *QuestionBank) SelectQuestions(_ context.Context, categoryID string, count int) ([]domain.Question, error) {
	pool, ok := b.byCategory[categoryID]
	if !ok {
		found := false
		for _, c := range b.categories {
			if c.ID == categoryID {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrCategoryNotFound
		}
		return []domain.Question{}, nil
	}

	shuffled := make([]domain.Question, len(pool))
	copy(shuffled, pool)

	b.mu.Lock()
	b.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	b.mu.Unlock()

	if count > 0 && count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled, nil
}
