package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizdash/internal/app"
	"quizdash/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Contract violations are
// the caller's bug (400); transient backend faults are gateway errors so
// clients can distinguish "retry" from "fix your request".
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrNoQuestionsAvailable):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrAttemptNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrFetch), errors.Is(err, domain.ErrPersistence):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

type questionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"questionText"`
	Options []string `json:"options"`
}

type sessionView struct {
	SessionID      string          `json:"sessionId"`
	Category       domain.Category `json:"category"`
	State          string          `json:"state"`
	QuestionIndex  int             `json:"questionIndex"`
	TotalQuestions int             `json:"totalQuestions"`
	Answered       int             `json:"answered"`
	Question       *questionView   `json:"question,omitempty"`
	SelectedOption *int            `json:"selectedOption,omitempty"`
}

// viewSession projects a session for clients. The correct answer index never
// leaves the server while the question is still open.
func viewSession(session *app.Session) sessionView {
	answered, total := session.Progress()
	view := sessionView{
		SessionID:      session.ID(),
		Category:       session.Category(),
		State:          session.State().String(),
		TotalQuestions: total,
		Answered:       answered,
	}

	if question, index, err := session.CurrentQuestion(); err == nil {
		view.QuestionIndex = index
		view.Question = &questionView{
			ID:      question.ID,
			Text:    question.Text,
			Options: question.Options,
		}
		if selected, ok := session.SelectedOption(); ok {
			view.SelectedOption = &selected
		}
	}
	return view
}
