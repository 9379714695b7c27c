package model

import "errors"

// Классы ошибок домена. Сервисы и репозитории оборачивают их через %w,
// хендлеры различают через errors.Is.
var (
	// ErrUnauthenticated - токен отсутствует, невалиден, истёк или пользователь не найден.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden - пользователь аутентифицирован, но не владеет ресурсом.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound - нет такого item/blob/user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput - некорректный идентификатор или обязательное поле.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageFault - ошибка ввода-вывода хранилища.
	ErrStorageFault = errors.New("storage fault")

	// ErrEmailTaken - email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials - неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
