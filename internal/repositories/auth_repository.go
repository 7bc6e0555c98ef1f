package repositories

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"tsehay_admin/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicateKey is returned when an account with the same username exists.
var ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

// AuthRepository defines the interface for admin account lookups.
type AuthRepository interface {
	CreateUser(username, password string) (*models.AdminUser, error)
	FindUserByUsername(username string) (*models.AdminUser, error)
}

// authRepository keeps admin accounts in memory with bcrypt password hashes.
type authRepository struct {
	mu    sync.RWMutex
	users map[string]models.AdminUser
	cost  int
}

// NewAuthRepository creates an empty account store hashing with the given bcrypt cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewAuthRepository(cost int) AuthRepository {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &authRepository{users: make(map[string]models.AdminUser), cost: cost}
}

// CreateUser hashes the password and stores the account.
// Usernames are case-insensitive.
func (r *authRepository) CreateUser(username, password string) (*models.AdminUser, error) {
	key := normalizeUsername(username)
	if key == "" {
		return nil, fmt.Errorf("%w: empty username", ErrInvalidRecord)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[key]; exists {
		return nil, fmt.Errorf("%w: username %s", ErrDuplicateKey, key)
	}
	user := models.AdminUser{Username: strings.TrimSpace(username), PasswordHash: string(hash)}
	r.users[key] = user
	return &user, nil
}

// FindUserByUsername retrieves an account, including its password hash.
func (r *authRepository) FindUserByUsername(username string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[normalizeUsername(username)]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
