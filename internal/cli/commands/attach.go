package commands

import (
	"GophMart/internal/cli/model"
	"GophMart/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type attachCmd struct{}

func (attachCmd) Name() string        { return "attach" }
func (attachCmd) Description() string { return "Привязать свой файл к своему item" }
func (attachCmd) Usage() string       { return "attach <item-id> <file-id>" }

func (attachCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return changeAttachment(ctx, cfg, args, http.MethodPost, "associate-image", "Attached")
}

type detachCmd struct{}

func (detachCmd) Name() string        { return "detach" }
func (detachCmd) Description() string { return "Отвязать файл от item (файл не удаляется)" }
func (detachCmd) Usage() string       { return "detach <item-id> <file-id>" }

func (detachCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return changeAttachment(ctx, cfg, args, http.MethodDelete, "disassociate-image", "Detached")
}

func changeAttachment(ctx context.Context, cfg *config.Config, args []string, method, action, done string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/items/%s/%s/%s", url.PathEscape(args[0]), action, url.PathEscape(args[1]))
	var it model.Item
	if err := c.DoJSON(ctx, method, path, nil, &it); err != nil {
		return explain(err)
	}
	fmt.Fprintf(Out, "%s %s\n", done, args[1])
	printItem(it)
	return nil
}

func init() {
	RegisterCmd(attachCmd{})
	RegisterCmd(detachCmd{})
}
