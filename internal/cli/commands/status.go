package commands

import (
	"GophMart/internal/cli/api"
	"GophMart/internal/cli/model"
	"GophMart/internal/config"
	"context"
	"fmt"
	"net/http"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать, под кем выполнен вход и жив ли токен" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	fmt.Fprintf(Out, "Server: %s\n", cfg.ServerURL)
	email, _ := loginStore(cfg).LoadLogin()
	c, err := authClient(cfg)
	if err != nil {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}

	var items []model.Item
	err = c.DoJSON(ctx, http.MethodGet, "/user/items", nil, &items)
	switch {
	case err == nil:
		fmt.Fprintf(Out, "Logged in as %s, items: %d\n", email, len(items))
	case api.StatusOf(err) == http.StatusUnauthorized:
		fmt.Fprintf(Out, "Token for %s is expired or invalid, login again\n", email)
	default:
		return err
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
