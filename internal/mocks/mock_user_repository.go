package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/healthportal/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.User) error
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc         func(ctx context.Context, id string) (*domain.User, error)
	UpdateFunc           func(ctx context.Context, user *domain.User) error
	UpdatePasswordFunc   func(ctx context.Context, id, passwordHash string) error
	SetResetCodeFunc     func(ctx context.Context, id, code string, expiry time.Time) error
	ConsumeResetCodeFunc func(ctx context.Context, id, code, passwordHash string) error

	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository with an in-memory
// default store keyed by email
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// Seed places a user in the default in-memory store
func (m *MockUserRepository) Seed(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

// Create stores a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = "mock_user_id"
	}
	m.users[user.Email] = user
	return nil
}

// FindByEmail looks up a user by email. The default behavior hands out a
// copy, matching a real store where reads never alias the stored record.
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

// FindByID looks up a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Update replaces identity and profile fields
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, stored := range m.users {
		if stored.ID == user.ID {
			delete(m.users, email)
			m.users[user.Email] = user
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// UpdatePassword replaces the stored password hash
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// SetResetCode stores a reset code and its expiry
func (m *MockUserRepository) SetResetCode(ctx context.Context, id, code string, expiry time.Time) error {
	if m.SetResetCodeFunc != nil {
		return m.SetResetCodeFunc(ctx, id, code, expiry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			user.ResetCode = code
			user.ResetCodeExpiry = expiry
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// ConsumeResetCode atomically applies the new hash and clears the reset
// fields, matching the conditional-update semantics of the real store
func (m *MockUserRepository) ConsumeResetCode(ctx context.Context, id, code, passwordHash string) error {
	if m.ConsumeResetCodeFunc != nil {
		return m.ConsumeResetCodeFunc(ctx, id, code, passwordHash)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			if user.ResetCode != code {
				return domain.ErrNoResetRequested
			}
			user.PasswordHash = passwordHash
			user.ResetCode = ""
			user.ResetCodeExpiry = time.Time{}
			return nil
		}
	}
	return domain.ErrNoResetRequested
}
