package app_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"quizdash/internal/app"
	"quizdash/internal/domain"
	"quizdash/internal/infra/memory"
)

func testBank() *memory.QuestionBank {
	return memory.NewQuestionBankWithRand(
		memory.SeedCategories(),
		memory.SeedQuestions(),
		rand.New(rand.NewSource(7)),
	)
}

func testService(attempts app.AttemptStore) *app.QuizService {
	seq := 0
	newID := func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	now := func() time.Time {
		return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return app.NewQuizServiceWithClock(testBank(), attempts, memory.NewSessionStore(), newID, now)
}

func playToCompletion(t *testing.T, service *app.QuizService, userID, sessionID string) {
	t.Helper()
	for {
		session, err := service.Session(userID, sessionID)
		if err != nil {
			t.Fatalf("session: %v", err)
		}
		if session.State() != app.StateInProgress {
			return
		}
		if err := service.SelectOption(userID, sessionID, 0); err != nil {
			t.Fatalf("select: %v", err)
		}
		if _, err := service.Advance(userID, sessionID); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
}

func TestStartQuizUnknownCategory(t *testing.T) {
	service := testService(memory.NewAttemptStore())
	_, err := service.StartQuiz(context.Background(), "u1", "geography", 5)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestStartQuizEmptyCategory(t *testing.T) {
	bank := memory.NewQuestionBankWithRand(
		[]domain.Category{{ID: "empty", Name: "Empty"}},
		nil,
		rand.New(rand.NewSource(1)),
	)
	service := app.NewQuizService(bank, memory.NewAttemptStore(), memory.NewSessionStore())

	_, err := service.StartQuiz(context.Background(), "u1", "empty", 5)
	if !errors.Is(err, domain.ErrNoQuestionsAvailable) {
		t.Fatalf("expected no questions available, got %v", err)
	}
}

func TestFinishPersistsAttempt(t *testing.T) {
	attempts := memory.NewAttemptStore()
	service := testService(attempts)
	ctx := context.Background()

	session, err := service.StartQuiz(ctx, "u1", "math", 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	playToCompletion(t, service, "u1", session.ID())

	attempt, err := service.FinishQuiz(ctx, "u1", session.ID())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if attempt.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if attempt.TotalQuestions != 5 || len(attempt.Responses) != 5 {
		t.Fatalf("expected 5 questions answered, got %+v", attempt)
	}
	if attempt.Score != percentageOf(attempt.CorrectAnswers, 5) {
		t.Fatalf("score %d inconsistent with %d/5", attempt.Score, attempt.CorrectAnswers)
	}

	// Session is gone after a successful save.
	if _, err := service.Session("u1", session.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func percentageOf(correct, total int) int {
	return (200*correct + total) / (2 * total)
}

func TestFailedSaveRetainsSessionForRetry(t *testing.T) {
	store := &flakyAttemptStore{AttemptStore: memory.NewAttemptStore(), failures: 1}
	service := testService(store)
	ctx := context.Background()

	session, err := service.StartQuiz(ctx, "u1", "science", 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	playToCompletion(t, service, "u1", session.ID())

	if _, err := service.FinishQuiz(ctx, "u1", session.ID()); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	// Nothing was recorded and the completed session survives.
	history, err := service.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("failed save must not record an attempt, got %d", len(history))
	}

	// Retry without replaying the quiz.
	attempt, err := service.FinishQuiz(ctx, "u1", session.ID())
	if err != nil {
		t.Fatalf("retry finish: %v", err)
	}
	if attempt.TotalQuestions != 5 {
		t.Fatalf("retried attempt incomplete: %+v", attempt)
	}
}

func TestAbandonProducesNoAttempt(t *testing.T) {
	service := testService(memory.NewAttemptStore())
	ctx := context.Background()

	session, err := service.StartQuiz(ctx, "u1", "history", 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := service.SelectOption("u1", session.ID(), 0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := service.AbandonQuiz("u1", session.ID()); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	history, err := service.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("abandon must not persist, got %d attempts", len(history))
	}
	if _, err := service.Session("u1", session.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestSessionOwnershipHidden(t *testing.T) {
	service := testService(memory.NewAttemptStore())

	session, err := service.StartQuiz(context.Background(), "u1", "math", 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Session("u2", session.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
}

func TestAttemptOwnershipHidden(t *testing.T) {
	service := testService(memory.NewAttemptStore())
	ctx := context.Background()

	session, err := service.StartQuiz(ctx, "u1", "math", 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	playToCompletion(t, service, "u1", session.ID())
	attempt, err := service.FinishQuiz(ctx, "u1", session.ID())
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	if _, err := service.AttemptByID(ctx, "u2", attempt.ID); !errors.Is(err, domain.ErrAttemptNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
	if _, err := service.AttemptByID(ctx, "u1", attempt.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
}

type flakyAttemptStore struct {
	*memory.AttemptStore
	failures int
}

func (s *flakyAttemptStore) Save(ctx context.Context, draft domain.AttemptDraft) (domain.Attempt, error) {
	if s.failures > 0 {
		s.failures--
		return domain.Attempt{}, errors.New("backend unavailable")
	}
	return s.AttemptStore.Save(ctx, draft)
}
