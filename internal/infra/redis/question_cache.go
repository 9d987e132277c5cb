package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizdash/internal/domain"
)

// QuestionBank is the source a cache miss falls back to (Postgres in
// production, the static bank in tests).
type QuestionBank interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, categoryID string) (domain.Category, error)
	SelectQuestions(ctx context.Context, categoryID string, count int) ([]domain.Question, error)
}

// QuestionCache fronts a QuestionBank with Redis. Whole categories are
// cached as JSON blobs:
//
//	SET quiz:bank:categories          [Category...]
//	SET quiz:bank:{categoryID}        [Question...]
//
// Selection always shuffles locally so cached order never biases the draw.
type QuestionCache struct {
	client *redis.Client
	source QuestionBank
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionCache(client *redis.Client, source QuestionBank, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const key = "quiz:bank:categories"

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var categories []domain.Category
		if err := json.Unmarshal(raw, &categories); err == nil {
			return categories, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the key.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var categories []domain.Category
			if err := json.Unmarshal(raw, &categories); err == nil {
				return categories, nil
			}
		}

		categories, err := c.source.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(categories); err == nil {
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (c *QuestionCache) Category(ctx context.Context, categoryID string) (domain.Category, error) {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	for _, category := range categories {
		if category.ID == categoryID {
			return category, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func (c *QuestionCache) SelectQuestions(ctx context.Context, categoryID string, count int) ([]domain.Question, error) {
	pool, err := c.categoryQuestions(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	shuffled := make([]domain.Question, len(pool))
	copy(shuffled, pool)

	c.mu.Lock()
	c.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	c.mu.Unlock()

	if count > 0 && count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled, nil
}

func (c *QuestionCache) categoryQuestions(ctx context.Context, categoryID string) ([]domain.Question, error) {
	key := "quiz:bank:" + categoryID

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var questions []domain.Question
		if err := json.Unmarshal(raw, &questions); err == nil {
			return questions, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var questions []domain.Question
			if err := json.Unmarshal(raw, &questions); err == nil {
				return questions, nil
			}
		}

		// Errors (unknown category included) are never cached.
		questions, err := c.source.SelectQuestions(ctx, categoryID, 0)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(questions); err == nil {
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
