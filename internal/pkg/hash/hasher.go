package hash

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt cost factor for every stored password hash.
const Cost = 10

type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: Cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.cost
	if cost <= 0 {
		cost = Cost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
