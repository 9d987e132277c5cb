package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quizdash/internal/domain"
)

// UserStore abstracts how accounts are stored (memory, SQLite, Postgres).
type UserStore interface {
	CreateUser(ctx context.Context, user domain.User) error
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	UserByID(ctx context.Context, id string) (domain.User, error)
}

// Service implements the identity boundary: register, authenticate, resolve
// the current user from a token, and sign out.
type Service struct {
	users  UserStore
	tokens *TokenManager
	cost   int
	now    func() time.Time
	newID  func() string
}

func NewService(users UserStore, tokens *TokenManager, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:  users,
		tokens: tokens,
		cost:   bcryptCost,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("%w: name, email, and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Authenticate checks credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// CurrentUser resolves the account a bearer token was issued for.
func (s *Service) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	return s.users.UserByID(ctx, userID)
}

// SignOut validates the token so callers get an error for garbage input.
// Tokens are stateless; disposal is the client's job and expiry bounds the
// remaining lifetime.
func (s *Service) SignOut(_ context.Context, token string) error {
	if _, err := s.tokens.Verify(token); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	return nil
}
