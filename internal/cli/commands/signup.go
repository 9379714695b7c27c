package commands

import (
	"GophMart/internal/cli/api"
	"GophMart/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupCmd struct{}

func (signupCmd) Name() string        { return "signup" }
func (signupCmd) Description() string { return "Зарегистрировать пользователя" }
func (signupCmd) Usage() string       { return "signup <email> <password>" }

func (signupCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	var resp struct {
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
	}
	err := anonClient(cfg).DoJSON(ctx, http.MethodPost, "/signup", credentials{Email: args[0], Password: args[1]}, &resp)
	if api.StatusOf(err) == http.StatusBadRequest && api.DetailOf(err) == "Email already registered" {
		return errors.New("email already registered")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered %s (active=%t). Now run: login %s <password>\n", resp.Email, resp.IsActive, resp.Email)
	return nil
}

func init() { RegisterCmd(signupCmd{}) }
