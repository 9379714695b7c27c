package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AuthFSStore - файловое хранилище токена и email пользователя для CLI.
// Токен лежит в Path, email рядом в Path + ".login".
type AuthFSStore struct {
	Path string
}

func (s AuthFSStore) tokenPath() (string, error) {
	if s.Path == "" {
		return "", errors.New("token file path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return "", err
	}
	return s.Path, nil
}

func (s AuthFSStore) loginPath() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return p + ".login", nil
}

func readTrimmed(p, what string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", errors.New("empty " + what + " file")
	}
	return v, nil
}

// Save сохраняет токен в файл.
func (s AuthFSStore) Save(token string) error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(strings.TrimSpace(token)), 0o600)
}

// Load читает токен из файла.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p, "token")
}

// Clear удаляет токен и email. Отсутствие файлов не ошибка.
func (s AuthFSStore) Clear() error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	for _, f := range []string{p, p + ".login"} {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// SaveLogin сохраняет email пользователя.
func (s AuthFSStore) SaveLogin(email string) error {
	if email == "" {
		return errors.New("empty login")
	}
	p, err := s.loginPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(email), 0o600)
}

// LoadLogin читает email пользователя.
func (s AuthFSStore) LoadLogin() (string, error) {
	p, err := s.loginPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p, "login")
}
