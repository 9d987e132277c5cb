package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"quizdash/internal/app"
	"quizdash/internal/auth"
)

// Server wires the REST API and the interactive websocket endpoint.
type Server struct {
	auth     *auth.Service
	quiz     *app.QuizService
	perQuiz  int
	upgrader websocket.Upgrader
}

// NewServer builds the HTTP surface. questionsPerQuiz is the fixed length of
// a quiz attempt.
func NewServer(authService *auth.Service, quizService *app.QuizService, questionsPerQuiz int) *Server {
	return &Server{
		auth:    authService,
		quiz:    quizService,
		perQuiz: questionsPerQuiz,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.requireUser(s.handleLogout)).Methods(http.MethodPost)
	api.HandleFunc("/me", s.requireUser(s.handleMe)).Methods(http.MethodGet)

	api.HandleFunc("/categories", s.requireUser(s.handleCategories)).Methods(http.MethodGet)

	api.HandleFunc("/quizzes", s.requireUser(s.handleStartQuiz)).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{id}", s.requireUser(s.handleGetQuiz)).Methods(http.MethodGet)
	api.HandleFunc("/quizzes/{id}", s.requireUser(s.handleAbandonQuiz)).Methods(http.MethodDelete)
	api.HandleFunc("/quizzes/{id}/select", s.requireUser(s.handleSelectOption)).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{id}/advance", s.requireUser(s.handleAdvance)).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{id}/save", s.requireUser(s.handleSaveQuiz)).Methods(http.MethodPost)

	api.HandleFunc("/attempts", s.requireUser(s.handleListAttempts)).Methods(http.MethodGet)
	api.HandleFunc("/attempts/{id}", s.requireUser(s.handleGetAttempt)).Methods(http.MethodGet)

	r.HandleFunc("/ws/quiz", s.requireUser(s.serveQuizWS))
	return r
}
