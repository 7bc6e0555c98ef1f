package services

import (
	"errors"
	"fmt"

	"tsehay_admin/internal/models"
	"tsehay_admin/internal/repositories"
	"tsehay_admin/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("session is invalid or has expired")
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string
	Session *AdminSession
}

// AuthService is the auth collaborator of the dashboard.
type AuthService interface {
	Login(creds models.Credentials) (*LoginResult, error)
	Authenticate(token string) (*AdminSession, error)
	Logout(sessionID string)
}

type authService struct {
	authRepo repositories.AuthRepository
	tokens   *utils.TokenManager
	sessions *SessionRegistry
	newID    func() string
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, tokens *utils.TokenManager, sessions *SessionRegistry) AuthService {
	return &authService{
		authRepo: authRepo,
		tokens:   tokens,
		sessions: sessions,
		newID:    uuid.NewString,
	}
}

// Login checks the credentials and opens a new dashboard session.
func (s *authService) Login(creds models.Credentials) (*LoginResult, error) {
	user, err := s.authRepo.FindUserByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	// err is bcrypt.ErrMismatchedHashAndPassword for wrong password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID := s.newID()
	token, expiresAt, err := s.tokens.Generate(sessionID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := s.sessions.Open(models.Session{
		ID:        sessionID,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	})
	return &LoginResult{Token: token, Session: session}, nil
}

// Authenticate resolves a session token to its live session.
func (s *authService) Authenticate(token string) (*AdminSession, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	session, ok := s.sessions.Get(claims.SessionID)
	if !ok {
		return nil, ErrInvalidSession
	}
	return session, nil
}

// Logout drops the session together with its dashboard.
func (s *authService) Logout(sessionID string) {
	s.sessions.Close(sessionID)
}
