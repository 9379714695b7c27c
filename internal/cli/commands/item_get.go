package commands

import (
	"GophMart/internal/cli/model"
	"GophMart/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type itemGetCmd struct{}

func (itemGetCmd) Name() string        { return "item-get" }
func (itemGetCmd) Description() string { return "Показать свой item с вложениями" }
func (itemGetCmd) Usage() string       { return "item-get <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var it model.Item
	if err := c.DoJSON(ctx, http.MethodGet, "/items/"+url.PathEscape(args[0]), nil, &it); err != nil {
		return explain(err)
	}

	fmt.Fprintf(Out, "id:          %s\n", it.ID)
	fmt.Fprintf(Out, "name:        %s\n", it.Name)
	if it.Description != nil {
		fmt.Fprintf(Out, "description: %s\n", *it.Description)
	}
	fmt.Fprintf(Out, "price:       %.2f\n", it.Price)
	fmt.Fprintf(Out, "quantity:    %d\n", it.Quantity)
	fmt.Fprintf(Out, "owner:       %s (%d)\n", it.OwnerEmail, it.OwnerID)
	fmt.Fprintf(Out, "updated:     %s\n", it.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	for _, a := range it.Attachments {
		if a.Missing {
			fmt.Fprintf(Out, "  file %s  <missing>\n", a.FileID)
			continue
		}
		fmt.Fprintf(Out, "  file %s  %s  %s  %d bytes\n", a.FileID, a.Filename, a.ContentType, a.Length)
	}
	return nil
}

func init() { RegisterCmd(itemGetCmd{}) }
