package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/repositories"
	"github.com/Rakhulsr/go-addressbook/app/utils/sessions"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService struct {
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
	tokens       *TokenService
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		sessionStore: sessionStore,
		tokens:       tokens,
	}
}

// CurrentUser returns the signed-in user, or nil when the session has none.
func (s *AuthService) CurrentUser(r *http.Request) (*models.User, error) {
	userID := s.sessionStore.GetUserID(r)
	if userID == "" {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user %s: %w", userID, err)
	}
	return user, nil
}

// APIToken returns the bearer token for calls to the address API. A stored
// token that no longer validates is replaced by a fresh one for the session
// user. Anonymous sessions get an empty token.
func (s *AuthService) APIToken(w http.ResponseWriter, r *http.Request) string {
	if token := s.sessionStore.GetAPIToken(r); token != "" {
		if _, err := s.tokens.Validate(token); err == nil {
			return token
		}
	}

	user, err := s.CurrentUser(r)
	if err != nil {
		log.Printf("AuthService.APIToken: %v", err)
		return ""
	}
	if user == nil {
		return ""
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		log.Printf("AuthService.APIToken: Failed to issue token for user %s: %v", user.ID, err)
		return ""
	}
	if err := s.sessionStore.SetAPIToken(w, r, token); err != nil {
		log.Printf("AuthService.APIToken: Failed to store refreshed token for user %s: %v", user.ID, err)
	}
	return token
}

func (s *AuthService) Login(w http.ResponseWriter, r *http.Request, email, password string) (*models.User, error) {
	user, err := s.userRepo.Authenticate(r.Context(), email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.SetUserID(w, r, user.ID); err != nil {
		return nil, fmt.Errorf("failed to set user session: %w", err)
	}
	if err := s.sessionStore.SetAPIToken(w, r, token); err != nil {
		return nil, fmt.Errorf("failed to store api token: %w", err)
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{Username: username, Email: email, Password: password}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("AuthService.Register: User %s (%s) registered successfully.", user.Email, user.ID)
	return user, nil
}

func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) error {
	return s.sessionStore.ClearSession(w, r)
}
