// Package auth implements the optional password gate shown before the game.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MessageIncorrect is shown when the password does not match.
const MessageIncorrect = "Incorrect password"

// ErrIncorrect is returned by Check for a wrong password.
var ErrIncorrect = errors.New("incorrect password")

// Gate verifies the classroom password.
type Gate struct {
	hash []byte
}

// NewGate returns a gate for a bcrypt hash. An empty hash disables the gate.
func NewGate(hash string) (*Gate, error) {
	if hash == "" {
		return &Gate{}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("failed to read password hash: %w", err)
	}
	return &Gate{hash: []byte(hash)}, nil
}

// NewGateFromPassword hashes a plain password, as given through the environment.
func NewGateFromPassword(password string) (*Gate, error) {
	if password == "" {
		return &Gate{}, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Gate{hash: []byte(hash)}, nil
}

// Enabled reports whether a password is required.
func (g *Gate) Enabled() bool {
	return g != nil && len(g.hash) > 0
}

// Check verifies password. A disabled gate accepts anything.
func (g *Gate) Check(password string) error {
	if !g.Enabled() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrIncorrect
	}
	return nil
}

// HashPassword returns a bcrypt hash for the config file.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}
