package app

import (
	"fmt"
	"sync"
	"time"

	"quizdash/internal/domain"
)

// SessionState tracks where a quiz session is in its lifecycle.
type SessionState int

const (
	StateInProgress SessionState = iota
	StateCompleted
	StateAbandoned
)

func (s SessionState) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateAbandoned:
		return "abandoned"
	}
	return "unknown"
}

const noSelection = -1

// Session is the ephemeral state of one quiz being taken. It is an explicit
// value handed to callers rather than ambient state, so the engine stays
// testable without any transport or UI around it. A session assumes a single
// interactive actor; the mutex only guards against accidental concurrent use
// of the same handle.
type Session struct {
	id       string
	userID   string
	category domain.Category

	mu        sync.Mutex
	questions []domain.Question
	index     int
	pending   int
	responses []domain.Response
	state     SessionState
	startedAt time.Time
	now       func() time.Time
}

func newSession(id, userID string, category domain.Category, questions []domain.Question) *Session {
	return newSessionWithClock(id, userID, category, questions, time.Now)
}

// newSessionWithClock allows deterministic timestamps in tests.
func newSessionWithClock(id, userID string, category domain.Category, questions []domain.Question, now func() time.Time) *Session {
	return &Session{
		id:        id,
		userID:    userID,
		category:  category,
		questions: questions,
		pending:   noSelection,
		responses: make([]domain.Response, 0, len(questions)),
		state:     StateInProgress,
		startedAt: now(),
		now:       now,
	}
}

func (s *Session) ID() string                { return s.id }
func (s *Session) UserID() string            { return s.userID }
func (s *Session) Category() domain.Category { return s.category }

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress reports how many questions have been answered out of the total.
func (s *Session) Progress() (answered, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses), len(s.questions)
}

// CurrentQuestion returns the question the session is waiting on and its
// zero-based position.
func (s *Session) CurrentQuestion() (domain.Question, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return domain.Question{}, 0, fmt.Errorf("%w: session is %s", domain.ErrInvalidInput, s.state)
	}
	return s.questions[s.index], s.index, nil
}

// SelectedOption returns the pending (uncommitted) selection for the current
// question, or ok=false when nothing is selected yet.
func (s *Session) SelectedOption() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == noSelection {
		return 0, false
	}
	return s.pending, true
}

// SelectOption stages an answer for the current question without committing
// it. Re-selecting overwrites the previous choice. An out-of-range index is a
// caller bug and is rejected, not clamped.
func (s *Session) SelectOption(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return fmt.Errorf("%w: session is %s", domain.ErrInvalidInput, s.state)
	}
	question := s.questions[s.index]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return fmt.Errorf("%w: option %d out of range for %d options", domain.ErrInvalidInput, optionIndex, len(question.Options))
	}
	s.pending = optionIndex
	return nil
}

// Advance commits the pending selection as a Response and moves to the next
// question, or completes the session after the last one. Advancing without a
// selection is rejected and leaves the session untouched.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return fmt.Errorf("%w: session is %s", domain.ErrInvalidInput, s.state)
	}
	if s.pending == noSelection {
		return fmt.Errorf("%w: no option selected", domain.ErrInvalidInput)
	}

	question := s.questions[s.index]
	s.responses = append(s.responses, domain.Response{
		QuestionID:          question.ID,
		SelectedOptionIndex: s.pending,
		IsCorrect:           s.pending == question.CorrectAnswerIndex,
	})
	s.pending = noSelection

	if s.index+1 < len(s.questions) {
		s.index++
		return nil
	}
	s.state = StateCompleted
	return nil
}

// Abandon discards the session. No attempt is produced and nothing is
// written anywhere; it is always a safe cancellation.
func (s *Session) Abandon() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return fmt.Errorf("%w: session is %s", domain.ErrInvalidInput, s.state)
	}
	s.state = StateAbandoned
	return nil
}

// Finish turns a completed session into an attempt draft. It is pure given
// the accumulated responses: no I/O, no identifier assignment. The score is
// the percentage of correct answers rounded half up.
func (s *Session) Finish() (domain.AttemptDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted {
		return domain.AttemptDraft{}, fmt.Errorf("%w: session is %s", domain.ErrInvalidInput, s.state)
	}

	correct := 0
	for _, r := range s.responses {
		if r.IsCorrect {
			correct++
		}
	}

	responses := make([]domain.Response, len(s.responses))
	copy(responses, s.responses)

	return domain.AttemptDraft{
		UserID:         s.userID,
		CategoryID:     s.category.ID,
		CategoryName:   s.category.Name,
		Score:          percentage(correct, len(s.questions)),
		TotalQuestions: len(s.questions),
		CorrectAnswers: correct,
		Responses:      responses,
	}, nil
}

// percentage computes round-half-up(100 * correct / total) in integer
// arithmetic. total > 0 is guaranteed by StartQuiz.
func percentage(correct, total int) int {
	return (200*correct + total) / (2 * total)
}
