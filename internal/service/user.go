package service

import (
	"GophMart/internal/auth"
	"GophMart/internal/model"
	"GophMart/internal/repo"
	"context"
	"errors"
	"fmt"
	"net/mail"
)

// UserService - регистрация и вход.
type UserService struct {
	repo   repo.UserRepository
	tokens *auth.TokenService
}

func NewUserService(r repo.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{repo: r, tokens: tokens}
}

// Register создаёт активного пользователя. Занятый email даёт model.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", model.ErrInvalidInput)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, model.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, &model.User{Email: email, Password: hash, IsActive: true})
}

// Login проверяет пароль и выдаёт access token с subject = email.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.VerifyPassword(password, u.Password) {
		return "", model.ErrInvalidCredentials
	}
	return s.tokens.Issue(u.Email)
}

// validateEmail принимает только голый адрес: без имени, угловых скобок и пробелов по краям.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email", model.ErrInvalidInput)
	}
	return nil
}
