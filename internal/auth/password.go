package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt принимает не более 72 байт.
const bcryptMaxLen = 72

// HashPassword возвращает bcrypt-хеш пароля. Соль случайная и хранится внутри хеша.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(normalize(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хешем. Для битого хеша возвращает false.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), normalize(password)) == nil
}

// normalize сворачивает длинные пароли в sha256, чтобы не упираться в лимит bcrypt.
func normalize(password string) []byte {
	if len(password) <= bcryptMaxLen {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
