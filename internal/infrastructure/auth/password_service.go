package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/you/healthportal/domain"
)

// DefaultCost matches the work factor the portal has always stored hashes
// with. Verify stays compatible when the cost is raised later because bcrypt
// encodes the cost in the hash itself.
const DefaultCost = 10

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a password service with the given bcrypt cost.
// A cost below bcrypt.MinCost falls back to DefaultCost.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
