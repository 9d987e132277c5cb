package domain

import "time"

// Category is a topic grouping of questions. Color and Icon are presentation
// hints passed through to clients untouched.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// Question is an MCQ with exactly one correct option, identified by index.
// Invariant: 0 <= CorrectAnswerIndex < len(Options), len(Options) >= 2.
type Question struct {
	ID                 string   `json:"id"`
	CategoryID         string   `json:"categoryId"`
	Text               string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Response records one answered question within an attempt. IsCorrect is
// derived at answer time and never recomputed.
type Response struct {
	QuestionID          string `json:"questionId"`
	SelectedOptionIndex int    `json:"selectedOptionIndex"`
	IsCorrect           bool   `json:"isCorrect"`
}

// Attempt is the persisted record of one completed quiz. CategoryName is
// denormalized so renamed or deleted categories do not corrupt history.
type Attempt struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	CategoryID     string     `json:"categoryId"`
	CategoryName   string     `json:"categoryName"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"totalQuestions"`
	CorrectAnswers int        `json:"correctAnswers"`
	Responses      []Response `json:"responses"`
	AttemptedAt    time.Time  `json:"attemptedAt"`
}

// AttemptDraft is an attempt before the store assigns its identifier.
// AttemptedAt may be zero, in which case the store stamps it on save.
type AttemptDraft struct {
	UserID         string
	CategoryID     string
	CategoryName   string
	Score          int
	TotalQuestions int
	CorrectAnswers int
	Responses      []Response
	AttemptedAt    time.Time
}

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
