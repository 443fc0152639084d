package utils

import "golang.org/x/crypto/bcrypt"

const DefaultBcryptCost = 12

// HashPassword returns a salted bcrypt digest. cost outside bcrypt's range
// falls back to DefaultBcryptCost.
func HashPassword(pw string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

// CheckPassword reports whether pw matches hashed. A malformed digest is a
// mismatch, never an error.
func CheckPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
