package service

import (
	"GophMart/internal/auth"
	"GophMart/internal/model"
	"GophMart/internal/repo"
	"context"
	"errors"
	"fmt"
)

// IdentityResolver превращает bearer-токен в пользователя.
type IdentityResolver struct {
	tokens *auth.TokenService
	users  repo.UserRepository
}

func NewIdentityResolver(tokens *auth.TokenService, users repo.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// Resolve валидирует токен и ищет пользователя по email из subject.
// Пропавший пользователь неотличим от плохого токена.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	email, err := r.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	u, err := r.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", model.ErrUnauthenticated)
		}
		return nil, err
	}
	return u, nil
}
