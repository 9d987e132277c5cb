package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizdash/internal/domain"
)

// AttemptStore keeps completed attempts in memory. It mirrors the ordering
// contract of the durable stores so the service layer behaves the same
// regardless of backend.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]domain.Attempt
	newID    func() string
	now      func() time.Time
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		attempts: make(map[string]domain.Attempt),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// NewAttemptStoreWithClock is test-only for deterministic ids and timestamps.
func NewAttemptStoreWithClock(newID func() string, now func() time.Time) *AttemptStore {
	return &AttemptStore{
		attempts: make(map[string]domain.Attempt),
		newID:    newID,
		now:      now,
	}
}

func (s *AttemptStore) Save(_ context.Context, draft domain.AttemptDraft) (domain.Attempt, error) {
	attemptedAt := draft.AttemptedAt
	if attemptedAt.IsZero() {
		attemptedAt = s.now()
	}

	responses := make([]domain.Response, len(draft.Responses))
	copy(responses, draft.Responses)

	attempt := domain.Attempt{
		ID:             s.newID(),
		UserID:         draft.UserID,
		CategoryID:     draft.CategoryID,
		CategoryName:   draft.CategoryName,
		Score:          draft.Score,
		TotalQuestions: draft.TotalQuestions,
		CorrectAnswers: draft.CorrectAnswers,
		Responses:      responses,
		AttemptedAt:    attemptedAt,
	}

	s.mu.Lock()
	s.attempts[attempt.ID] = attempt
	s.mu.Unlock()
	return attempt, nil
}

func (s *AttemptStore) GetByID(_ context.Context, id string) (domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[id]
	if !ok {
		return domain.Attempt{}, domain.ErrAttemptNotFound
	}
	return attempt, nil
}

func (s *AttemptStore) ListByUser(_ context.Context, userID string) ([]domain.Attempt, error) {
	s.mu.RLock()
	out := make([]domain.Attempt, 0)
	for _, attempt := range s.attempts {
		if attempt.UserID == userID {
			out = append(out, attempt)
		}
	}
	s.mu.RUnlock()

	// Most recent first; id keeps equal timestamps stable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AttemptedAt.Equal(out[j].AttemptedAt) {
			return out[i].AttemptedAt.After(out[j].AttemptedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
