package repo

// UserContextStore хранит email последнего вошедшего пользователя.
type UserContextStore interface {
	SaveLogin(email string) error
	LoadLogin() (string, error)
}
