package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"quizdash/internal/app"
	"quizdash/internal/domain"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.quiz.Categories(r.Context())
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrFetch, err))
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type startQuizRequest struct {
	CategoryID string `json:"categoryId"`
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed body", domain.ErrInvalidInput))
		return
	}

	session, err := s.quiz.StartQuiz(r.Context(), requestUser(r).ID, req.CategoryID, s.perQuiz)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewSession(session))
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	session, err := s.quiz.Session(requestUser(r).ID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewSession(session))
}

type selectOptionRequest struct {
	OptionIndex *int `json:"optionIndex"`
}

func (s *Server) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	var req selectOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OptionIndex == nil {
		writeError(w, fmt.Errorf("%w: optionIndex is required", domain.ErrInvalidInput))
		return
	}

	user := requestUser(r)
	if err := s.quiz.SelectOption(user.ID, mux.Vars(r)["id"], *req.OptionIndex); err != nil {
		writeError(w, err)
		return
	}
	session, err := s.quiz.Session(user.ID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewSession(session))
}

type advanceResponse struct {
	sessionView
	Attempt *domain.Attempt `json:"attempt,omitempty"`
}

// handleAdvance commits the staged answer. When the session completes, the
// attempt is scored and saved in the same request; a storage failure leaves
// the completed session registered so POST .../save can retry it.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	sessionID := mux.Vars(r)["id"]

	session, err := s.quiz.Advance(user.ID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	if session.State() != app.StateCompleted {
		writeJSON(w, http.StatusOK, advanceResponse{sessionView: viewSession(session)})
		return
	}

	attempt, err := s.quiz.FinishQuiz(r.Context(), user.ID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, advanceResponse{sessionView: viewSession(session), Attempt: &attempt})
}

// handleSaveQuiz retries persisting a completed session whose save failed.
func (s *Server) handleSaveQuiz(w http.ResponseWriter, r *http.Request) {
	attempt, err := s.quiz.FinishQuiz(r.Context(), requestUser(r).ID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attempt)
}

func (s *Server) handleAbandonQuiz(w http.ResponseWriter, r *http.Request) {
	err := s.quiz.AbandonQuiz(requestUser(r).ID, mux.Vars(r)["id"])
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := s.quiz.History(r.Context(), requestUser(r).ID)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrFetch, err))
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := s.quiz.AttemptByID(r.Context(), requestUser(r).ID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}
