package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"eventrsvp/internal/domain"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher that bcrypts a SHA256 digest of
// salt+password, keeping the effective input length under bcrypt's 72-byte cap.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) GenerateSalt() (string, error) {
	saltBytes := make([]byte, 32)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(saltBytes), nil
}

func (h *bcryptHasher) Hash(salt, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(salt, password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hash, salt, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), digest(salt, password))
}

func digest(salt, password string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}
