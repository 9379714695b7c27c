package repo

// TokenStore описывает абстракцию хранилища access-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}
