package http

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quizdash/internal/app"
	"quizdash/internal/auth"
	"quizdash/internal/domain"
	"quizdash/internal/infra/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	bank := memory.NewQuestionBankWithRand(
		memory.SeedCategories(),
		memory.SeedQuestions(),
		rand.New(rand.NewSource(11)),
	)
	quiz := app.NewQuizService(bank, memory.NewAttemptStore(), memory.NewSessionStore())
	authService := auth.NewService(
		memory.NewUserStore(),
		auth.NewTokenManager("test-secret", time.Hour),
		bcrypt.MinCost,
	)

	ts := httptest.NewServer(NewServer(authService, quiz, 5).Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func registerUser(t *testing.T, ts *httptest.Server, name, email string) (domain.User, string) {
	t.Helper()
	var created authResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
		"name": name, "email": email, "password": "hunter22",
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	return created.User, created.Token
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)

	user, _ := registerUser(t, ts, "Alex", "alex@example.com")

	var login authResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"email": "alex@example.com", "password": "hunter22",
	}, &login)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	if login.User.ID != user.ID {
		t.Fatalf("login returned different user: %s vs %s", login.User.ID, user.ID)
	}

	var me domain.User
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/me", login.Token, nil, &me)
	if resp.StatusCode != http.StatusOK || me.ID != user.ID {
		t.Fatalf("me: status %d user %s", resp.StatusCode, me.ID)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "Alex", "alex@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", map[string]string{
		"name": "Sam", "email": "alex@example.com", "password": "other",
	}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestLoginBadPassword(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "Alex", "alex@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/login", "", map[string]string{
		"email": "alex@example.com", "password": "wrong",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, url := range []string{"/api/categories", "/api/attempts", "/api/me"} {
		resp := doJSON(t, http.MethodGet, ts.URL+url, "", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", url, resp.StatusCode)
		}
	}
}

func TestCategoriesListed(t *testing.T) {
	ts := newTestServer(t)
	_, token := registerUser(t, ts, "Alex", "alex@example.com")

	var categories []domain.Category
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/categories", token, nil, &categories)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("categories: status %d", resp.StatusCode)
	}
	if len(categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(categories))
	}
}

func TestQuizFlowOverREST(t *testing.T) {
	ts := newTestServer(t)
	_, token := registerUser(t, ts, "Alex", "alex@example.com")

	var started sessionView
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/quizzes", token, map[string]string{"categoryId": "math"}, &started)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start: status %d", resp.StatusCode)
	}
	if started.TotalQuestions != 5 || started.Question == nil {
		t.Fatalf("unexpected start view: %+v", started)
	}
	if started.State != "in_progress" {
		t.Fatalf("expected in_progress, got %s", started.State)
	}

	quizURL := ts.URL + "/api/quizzes/" + started.SessionID

	// Advancing before any selection is a bad request.
	resp = doJSON(t, http.MethodPost, quizURL+"/advance", token, nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blind advance: expected 400, got %d", resp.StatusCode)
	}

	var final advanceResponse
	for i := 0; i < 5; i++ {
		var selected sessionView
		resp = doJSON(t, http.MethodPost, quizURL+"/select", token, map[string]int{"optionIndex": 0}, &selected)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("select %d: status %d", i, resp.StatusCode)
		}
		if selected.SelectedOption == nil || *selected.SelectedOption != 0 {
			t.Fatalf("select %d: selection not reflected: %+v", i, selected)
		}

		final = advanceResponse{}
		resp = doJSON(t, http.MethodPost, quizURL+"/advance", token, nil, &final)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("advance %d: status %d", i, resp.StatusCode)
		}
	}

	if final.State != "completed" {
		t.Fatalf("expected completed, got %s", final.State)
	}
	if final.Attempt == nil {
		t.Fatalf("expected attempt on final advance")
	}
	if final.Attempt.TotalQuestions != 5 {
		t.Fatalf("unexpected attempt: %+v", final.Attempt)
	}
	if final.Attempt.Score < 0 || final.Attempt.Score > 100 {
		t.Fatalf("score out of bounds: %d", final.Attempt.Score)
	}

	// The session is consumed; the attempt lives in history.
	resp = doJSON(t, http.MethodGet, quizURL, token, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for finished session, got %d", resp.StatusCode)
	}

	var attempts []domain.Attempt
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/attempts", token, nil, &attempts)
	if resp.StatusCode != http.StatusOK || len(attempts) != 1 {
		t.Fatalf("attempts: status %d count %d", resp.StatusCode, len(attempts))
	}

	var attempt domain.Attempt
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/attempts/"+attempts[0].ID, token, nil, &attempt)
	if resp.StatusCode != http.StatusOK || attempt.ID != attempts[0].ID {
		t.Fatalf("get attempt: status %d", resp.StatusCode)
	}
}

func TestSelectOptionValidation(t *testing.T) {
	ts := newTestServer(t)
	_, token := registerUser(t, ts, "Alex", "alex@example.com")

	var started sessionView
	doJSON(t, http.MethodPost, ts.URL+"/api/quizzes", token, map[string]string{"categoryId": "science"}, &started)
	quizURL := ts.URL + "/api/quizzes/" + started.SessionID

	resp := doJSON(t, http.MethodPost, quizURL+"/select", token, map[string]string{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing optionIndex: expected 400, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, quizURL+"/select", token, map[string]int{"optionIndex": 9}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("out of range: expected 400, got %d", resp.StatusCode)
	}
}

func TestStartQuizUnknownCategory(t *testing.T) {
	ts := newTestServer(t)
	_, token := registerUser(t, ts, "Alex", "alex@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/quizzes", token, map[string]string{"categoryId": "geography"}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAbandonQuiz(t *testing.T) {
	ts := newTestServer(t)
	_, token := registerUser(t, ts, "Alex", "alex@example.com")

	var started sessionView
	doJSON(t, http.MethodPost, ts.URL+"/api/quizzes", token, map[string]string{"categoryId": "history"}, &started)

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/quizzes/"+started.SessionID, token, nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("abandon: expected 204, got %d", resp.StatusCode)
	}

	// Abandoning twice is harmless.
	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/quizzes/"+started.SessionID, token, nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("repeat abandon: expected 204, got %d", resp.StatusCode)
	}

	var attempts []domain.Attempt
	doJSON(t, http.MethodGet, ts.URL+"/api/attempts", token, nil, &attempts)
	if len(attempts) != 0 {
		t.Fatalf("abandon must not persist an attempt, got %d", len(attempts))
	}
}

func TestAttemptsAreScopedToOwner(t *testing.T) {
	ts := newTestServer(t)
	_, alexToken := registerUser(t, ts, "Alex", "alex@example.com")
	_, samToken := registerUser(t, ts, "Sam", "sam@example.com")

	var started sessionView
	doJSON(t, http.MethodPost, ts.URL+"/api/quizzes", alexToken, map[string]string{"categoryId": "technology"}, &started)
	quizURL := ts.URL + "/api/quizzes/" + started.SessionID

	// Sam cannot see or drive Alex's session.
	resp := doJSON(t, http.MethodGet, quizURL, samToken, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign session: expected 404, got %d", resp.StatusCode)
	}

	var final advanceResponse
	for i := 0; i < 5; i++ {
		doJSON(t, http.MethodPost, quizURL+"/select", alexToken, map[string]int{"optionIndex": 1}, nil)
		final = advanceResponse{}
		doJSON(t, http.MethodPost, quizURL+"/advance", alexToken, nil, &final)
	}
	if final.Attempt == nil {
		t.Fatalf("expected attempt after final advance")
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/attempts/"+final.Attempt.ID, samToken, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign attempt: expected 404, got %d", resp.StatusCode)
	}

	var samAttempts []domain.Attempt
	doJSON(t, http.MethodGet, ts.URL+"/api/attempts", samToken, nil, &samAttempts)
	if len(samAttempts) != 0 {
		t.Fatalf("expected empty history for Sam, got %d", len(samAttempts))
	}
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	_, token := registerUser(t, ts, "Alex", "alex@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/logout", token, nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", resp.StatusCode)
	}
}
