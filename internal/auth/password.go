package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// prehash folds password into 44 base64 bytes. bcrypt reads at most 72
// bytes, so every character of a longer password must reach it this way.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])

	return out
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches hash. An empty hash
// never matches, but still costs one bcrypt comparison.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(decoy()), prehash(password))

		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)) == nil
}

var (
	decoyOnce sync.Once
	decoyHash string
)

// decoy returns a hash to compare against when there is no real one, so
// missing users and users without a password answer as slowly as others.
func decoy() string {
	decoyOnce.Do(func() {
		decoyHash, _ = HashPassword("decoy password")
	})

	return decoyHash
}
