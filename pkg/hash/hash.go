package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Secret hashes passwords and one-time codes. Cost is bcrypt.DefaultCost when zero.
type Secret struct {
	Cost int
}

func (s Secret) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("hash: empty input")
	}
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s Secret) Check(hashed, plain string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
