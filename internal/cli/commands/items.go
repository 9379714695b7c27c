package commands

import (
	"GophMart/internal/cli/model"
	"GophMart/internal/config"
	"context"
	"fmt"
	"net/http"
	"strings"
)

func printItem(it model.Item) {
	fmt.Fprintf(Out, "- %s  name=%s  price=%.2f  qty=%d  owner=%d", it.ID, it.Name, it.Price, it.Quantity, it.OwnerID)
	if len(it.ImageIDs) > 0 {
		fmt.Fprintf(Out, "  images=%s", strings.Join(it.ImageIDs, ","))
	}
	fmt.Fprintln(Out)
}

func printItems(list []model.Item) {
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return
	}
	for _, it := range list {
		printItem(it)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
}

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "Показать все items (без входа)" }
func (itemsCmd) Usage() string       { return "items" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var list []model.Item
	if err := anonClient(cfg).DoJSON(ctx, http.MethodGet, "/items", nil, &list); err != nil {
		return err
	}
	printItems(list)
	return nil
}

type myItemsCmd struct{}

func (myItemsCmd) Name() string        { return "my-items" }
func (myItemsCmd) Description() string { return "Показать свои items" }
func (myItemsCmd) Usage() string       { return "my-items" }

func (myItemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var list []model.Item
	if err := c.DoJSON(ctx, http.MethodGet, "/user/items", nil, &list); err != nil {
		return explain(err)
	}
	printItems(list)
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(myItemsCmd{})
}
