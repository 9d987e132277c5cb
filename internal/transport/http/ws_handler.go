package http

import (
	"encoding/json"
	"log"
	"net/http"

	"quizdash/internal/app"
	"quizdash/internal/domain"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	OptionIndex *int `json:"optionIndex"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// serveQuizWS drives one quiz session over a websocket: the client sends
// select/advance/abandon messages, the server answers with session state and
// finally the persisted attempt. One connection owns one session, so reads
// and writes stay on a single goroutine and never race.
func (s *Server) serveQuizWS(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	if categoryID == "" {
		http.Error(w, "missing categoryId", http.StatusBadRequest)
		return
	}
	user := requestUser(r)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := s.quiz.StartQuiz(r.Context(), user.ID, categoryID, s.perQuiz)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	// A dropped connection abandons the quiz unless it completed and saved.
	defer func() {
		if session.State() == app.StateInProgress {
			_ = s.quiz.AbandonQuiz(user.ID, session.ID())
		}
	}()

	_ = conn.WriteJSON(outboundMessage[sessionView]{Type: "question", Payload: viewSession(session)})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.OptionIndex == nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "optionIndex is required"}})
				continue
			}
			if err := session.SelectOption(*payload.OptionIndex); err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			_ = conn.WriteJSON(outboundMessage[sessionView]{Type: "question", Payload: viewSession(session)})

		case "advance":
			if session.State() == app.StateInProgress {
				if err := session.Advance(); err != nil {
					_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
					continue
				}
			}
			if session.State() != app.StateCompleted {
				_ = conn.WriteJSON(outboundMessage[sessionView]{Type: "question", Payload: viewSession(session)})
				continue
			}
			// Completed (possibly a retry after a failed save): persist.
			attempt, err := s.quiz.FinishQuiz(r.Context(), user.ID, session.ID())
			if err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{
					Message:   err.Error(),
					Retryable: true,
				}})
				continue
			}
			_ = conn.WriteJSON(outboundMessage[domain.Attempt]{Type: "completed", Payload: attempt})
			return

		case "abandon":
			if err := s.quiz.AbandonQuiz(user.ID, session.ID()); err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			_ = conn.WriteJSON(outboundMessage[sessionView]{Type: "abandoned", Payload: viewSession(session)})
			return

		default:
			_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}
