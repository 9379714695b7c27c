package commands

import (
	"GophMart/internal/cli/model"
	"GophMart/internal/config"
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type itemEditCmd struct{}

func (itemEditCmd) Name() string { return "item-edit" }
func (itemEditCmd) Description() string {
	return "Частично обновить item: меняются только переданные поля"
}
func (itemEditCmd) Usage() string {
	return "item-edit [--name=] [--description=] [--clear-description] [--price=] [--quantity=] [--images=id,id|--clear-images] <id>"
}

// buildPatch собирает JSON-патч только из явно переданных флагов.
func buildPatch(args []string) (string, map[string]any, error) {
	fs := newFlagSet("item-edit")
	name := fs.String("name", "", "новое имя")
	description := fs.String("description", "", "новое описание")
	clearDescription := fs.Bool("clear-description", false, "удалить описание")
	price := fs.String("price", "", "новая цена")
	quantity := fs.String("quantity", "", "новое количество")
	images := fs.String("images", "", "новый набор файлов через запятую")
	clearImages := fs.Bool("clear-images", false, "отвязать все файлы")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return "", nil, ErrUsage
	}

	patch := map[string]any{}
	var perr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch["name"] = *name
		case "description":
			patch["description"] = *description
		case "clear-description":
			if *clearDescription {
				patch["description"] = nil
			}
		case "price":
			v, err := strconv.ParseFloat(*price, 64)
			if err != nil {
				perr = ErrUsage
			}
			patch["price"] = v
		case "quantity":
			v, err := strconv.ParseInt(*quantity, 10, 64)
			if err != nil {
				perr = ErrUsage
			}
			patch["quantity"] = v
		case "images":
			ids := []string{}
			for _, id := range strings.Split(*images, ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
			patch["image_ids"] = ids
		case "clear-images":
			if *clearImages {
				patch["image_ids"] = []string{}
			}
		}
	})
	if perr != nil || len(patch) == 0 {
		return "", nil, ErrUsage
	}
	return fs.Arg(0), patch, nil
}

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	id, patch, err := buildPatch(args)
	if err != nil {
		return err
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var it model.Item
	if err := c.DoJSON(ctx, http.MethodPatch, "/items/"+url.PathEscape(id), patch, &it); err != nil {
		return explain(err)
	}
	fmt.Fprintln(Out, "Updated:")
	printItem(it)
	return nil
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Удалить item и его файлы" }
func (itemDeleteCmd) Usage() string       { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var res model.DeleteResult
	if err := c.DoJSON(ctx, http.MethodDelete, "/items/"+url.PathEscape(args[0]), nil, &res); err != nil {
		return explain(err)
	}
	fmt.Fprintf(Out, "%s: %s\n", res.Message, res.ItemID)
	for _, a := range res.Attachments {
		fmt.Fprintf(Out, "  file %s: %s\n", a.BlobID, a.Outcome)
	}
	return nil
}

func init() {
	RegisterCmd(itemEditCmd{})
	RegisterCmd(itemDeleteCmd{})
}
