package commands

import (
	"GophMart/internal/cli/api"
	"GophMart/internal/cli/repo"
	fsrepo "GophMart/internal/cli/repo/fs"
	"GophMart/internal/config"
	"errors"
	"flag"
	"io"
	"net/http"
)

// ErrNotLoggedIn - команда требует токен, а его нет.
var ErrNotLoggedIn = errors.New("not logged in, run `login <email> <password>` first")

// Хранилища сессии клиента. По умолчанию файл TOKEN_FILE и email рядом с ним.
var (
	tokenStore = func(cfg *config.Config) repo.TokenStore {
		return fsrepo.AuthFSStore{Path: cfg.TokenFile}
	}
	loginStore = func(cfg *config.Config) repo.UserContextStore {
		return fsrepo.AuthFSStore{Path: cfg.TokenFile}
	}
)

// anonClient - клиент без токена, для публичных маршрутов.
func anonClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.ServerURL, "")
}

// authClient - клиент с сохранённым токеном.
func authClient(cfg *config.Config) (*api.Client, error) {
	token, err := tokenStore(cfg).Load()
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	return api.NewClient(cfg.ServerURL, token), nil
}

// explain делает сообщение об ошибке сервера понятнее для типовых статусов.
func explain(err error) error {
	switch api.StatusOf(err) {
	case http.StatusUnauthorized:
		return errors.Join(errors.New("session expired or invalid, login again"), err)
	case http.StatusForbidden:
		return errors.Join(errors.New("you are not the owner"), err)
	case http.StatusNotFound:
		return errors.Join(errors.New("not found"), err)
	}
	return err
}

// newFlagSet - FlagSet подкоманды без вывода в stderr: ошибки превращаются в ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
