package commands

import (
	"GophMart/internal/cli/api"
	"GophMart/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Войти и сохранить токен" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	err := anonClient(cfg).DoJSON(ctx, http.MethodPost, "/login", credentials{Email: args[0], Password: args[1]}, &tok)
	if api.StatusOf(err) == http.StatusBadRequest && api.DetailOf(err) == "Incorrect email or password" {
		return errors.New("incorrect email or password")
	}
	if err != nil {
		return err
	}
	if tok.AccessToken == "" {
		return errors.New("server returned no access token")
	}

	if err := tokenStore(cfg).Save(tok.AccessToken); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	if err := loginStore(cfg).SaveLogin(args[0]); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Удалить сохранённый токен" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := tokenStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
