package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid password")

// PasswordHasher hashes and checks operator passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher() *BcryptPasswordHasher {
	return NewBcryptPasswordHasherWithCost(bcrypt.DefaultCost)
}

// NewBcryptPasswordHasherWithCost clamps cost into bcrypt's accepted range.
func NewBcryptPasswordHasherWithCost(cost int) *BcryptPasswordHasher {
	cost = max(bcrypt.MinCost, min(cost, bcrypt.MaxCost))
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrInvalidPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare returns nil when plain matches hash.
func (h *BcryptPasswordHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// OperatorGate guards the screen behind a single operator password.
// A gate with an empty hash is disabled and lets everyone through.
type OperatorGate struct {
	hash   string
	hasher PasswordHasher
}

func NewOperatorGate(hash string, hasher PasswordHasher) *OperatorGate {
	return &OperatorGate{hash: hash, hasher: hasher}
}

// Enabled reports whether an operator password is configured.
func (g *OperatorGate) Enabled() bool {
	return g != nil && g.hash != ""
}

// Verify checks plain against the configured hash.
func (g *OperatorGate) Verify(plain string) error {
	if !g.Enabled() {
		return nil
	}
	if plain == "" {
		return ErrInvalidPassword
	}
	if err := g.hasher.Compare(g.hash, plain); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
