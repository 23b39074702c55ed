package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password is required")

	// ErrPasswordTooLong is returned when the password exceeds the 72-byte
	// bcrypt input limit.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")
)

// Hasher hashes and verifies passwords. Implementations must be safe for
// concurrent use.
type Hasher interface {
	// Hash returns a one-way hash of the password.
	Hash(password string) ([]byte, error)

	// Verify reports whether the password matches the hash. It never
	// returns an error: any failure (corrupt hash, algorithm mismatch)
	// is a verification failure.
	Verify(password string, hash []byte) bool
}

// Option configures the bcrypt hasher.
type Option func(*bcryptHasher)

// WithCost sets the bcrypt cost parameter. Values outside the valid bcrypt
// range fall back to the default cost.
func WithCost(cost int) Option {
	return func(h *bcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates the default bcrypt-backed Hasher.
func NewBcryptHasher(opts ...Option) Hasher {
	h := &bcryptHasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *bcryptHasher) Hash(password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if len(password) > 72 {
		return nil, fmt.Errorf("%w: 72 bytes", ErrPasswordTooLong)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (h *bcryptHasher) Verify(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
