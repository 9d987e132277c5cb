package domain

import "errors"

var (
	// ErrCategoryNotFound is returned for an unknown category identifier.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrQuestionNotFound indicates a question identifier that is not in the bank.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoQuestionsAvailable means the category exists but has zero questions.
	ErrNoQuestionsAvailable = errors.New("no questions available for category")
	// ErrSessionNotFound is returned when a quiz session does not exist or
	// belongs to another user.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrAttemptNotFound is returned when an attempt does not exist or belongs
	// to another user.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrInvalidInput marks a caller contract violation (out-of-range option,
	// advancing without a selection). Operations fail loudly instead of coercing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFetch marks a backend read failure (question bank unreachable).
	// Callers surface it as a transient condition; retrying is their policy.
	ErrFetch = errors.New("fetch failed")
	// ErrPersistence marks a backend write failure. A failed save leaves no
	// partial state; the completed draft is retained so the save can be retried.
	ErrPersistence = errors.New("persistence failed")
	// ErrEmailTaken is returned when registering with an email that exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound indicates a user id that does not resolve to an account.
	ErrUserNotFound = errors.New("user not found")
)
