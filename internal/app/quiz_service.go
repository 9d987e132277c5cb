package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quizdash/internal/domain"
)

// QuestionBank exposes read-only quiz content (static seed, Postgres, or a
// cache in front of either).
type QuestionBank interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, categoryID string) (domain.Category, error)
	// SelectQuestions returns up to count questions of the category in an
	// unbiased random order. Fewer than count matches returns all of them.
	SelectQuestions(ctx context.Context, categoryID string, count int) ([]domain.Question, error)
}

// AttemptStore persists completed attempts, assigning identity on save.
type AttemptStore interface {
	Save(ctx context.Context, draft domain.AttemptDraft) (domain.Attempt, error)
	GetByID(ctx context.Context, id string) (domain.Attempt, error)
	// ListByUser orders by AttemptedAt descending with id as a stable tie-break.
	ListByUser(ctx context.Context, userID string) ([]domain.Attempt, error)
}

// SessionRepository holds in-flight quiz sessions keyed by session id.
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// QuizService drives quiz attempts end to end: starting a session against
// the question bank, stepping it, and converting completed sessions into
// persisted attempts.
type QuizService struct {
	bank     QuestionBank
	attempts AttemptStore
	sessions SessionRepository
	newID    func() string
	now      func() time.Time
}

func NewQuizService(bank QuestionBank, attempts AttemptStore, sessions SessionRepository) *QuizService {
	return &QuizService{
		bank:     bank,
		attempts: attempts,
		sessions: sessions,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// NewQuizServiceWithClock is test-only for deterministic ids and timestamps.
func NewQuizServiceWithClock(bank QuestionBank, attempts AttemptStore, sessions SessionRepository, newID func() string, now func() time.Time) *QuizService {
	return &QuizService{bank: bank, attempts: attempts, sessions: sessions, newID: newID, now: now}
}

// Categories lists the topics a user can pick from.
func (s *QuizService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.bank.ListCategories(ctx)
}

// StartQuiz creates a session for the user in the given category. The
// category must exist and have at least one question.
func (s *QuizService) StartQuiz(ctx context.Context, userID, categoryID string, questionCount int) (*Session, error) {
	category, err := s.bank.Category(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	questions, err := s.bank.SelectQuestions(ctx, categoryID, questionCount)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestionsAvailable
	}

	session := newSessionWithClock(s.newID(), userID, category, questions, s.now)
	s.sessions.Put(session)
	return session, nil
}

// Session resolves an in-flight session owned by the user. Someone else's
// session id resolves to not-found rather than leaking its existence.
func (s *QuizService) Session(userID, sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok || session.UserID() != userID {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SelectOption stages an answer on the user's session.
func (s *QuizService) SelectOption(userID, sessionID string, optionIndex int) error {
	session, err := s.Session(userID, sessionID)
	if err != nil {
		return err
	}
	return session.SelectOption(optionIndex)
}

// Advance commits the staged answer and steps the session forward.
func (s *QuizService) Advance(userID, sessionID string) (*Session, error) {
	session, err := s.Session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Advance(); err != nil {
		return nil, err
	}
	return session, nil
}

// AbandonQuiz discards an in-flight session. Nothing is persisted.
func (s *QuizService) AbandonQuiz(userID, sessionID string) error {
	session, err := s.Session(userID, sessionID)
	if err != nil {
		return err
	}
	if err := session.Abandon(); err != nil {
		return err
	}
	s.sessions.Delete(sessionID)
	return nil
}

// FinishQuiz scores a completed session and persists the attempt. On a
// storage failure the session stays registered with its completed state, so
// the caller can retry the save without re-running the quiz.
func (s *QuizService) FinishQuiz(ctx context.Context, userID, sessionID string) (domain.Attempt, error) {
	session, err := s.Session(userID, sessionID)
	if err != nil {
		return domain.Attempt{}, err
	}

	draft, err := session.Finish()
	if err != nil {
		return domain.Attempt{}, err
	}
	draft.AttemptedAt = s.now()

	attempt, err := s.attempts.Save(ctx, draft)
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("%w: save attempt: %v", domain.ErrPersistence, err)
	}

	s.sessions.Delete(sessionID)
	return attempt, nil
}

// History returns the user's attempts, most recent first.
func (s *QuizService) History(ctx context.Context, userID string) ([]domain.Attempt, error) {
	return s.attempts.ListByUser(ctx, userID)
}

// AttemptByID fetches one attempt for display. An attempt owned by another
// user is reported as not found so results never leak across accounts.
func (s *QuizService) AttemptByID(ctx context.Context, userID, attemptID string) (domain.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return domain.Attempt{}, err
	}
	if attempt.UserID != userID {
		return domain.Attempt{}, domain.ErrAttemptNotFound
	}
	return attempt, nil
}
