package commands

import (
	"GophMart/internal/cli/api"
	"GophMart/internal/cli/model"
	"GophMart/internal/config"
	"context"
	"flag"
	"fmt"
	"strings"
)

// fileList - повторяемый флаг --file.
type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error { *f = append(*f, v); return nil }

type itemAddCmd struct{}

func (itemAddCmd) Name() string { return "item-add" }
func (itemAddCmd) Description() string {
	return "Создать item, опционально сразу с файлами"
}
func (itemAddCmd) Usage() string {
	return "item-add [--description=<text>] [--file=<path>]... <name> <price> <quantity>"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("item-add")
	description := fs.String("description", "", "описание")
	var files fileList
	fs.Var(&files, "file", "путь к файлу (можно повторять)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 3 || rest[0] == "" {
		return ErrUsage
	}

	fields := map[string]string{"name": rest[0], "price": rest[1], "quantity": rest[2]}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "description" {
			fields["description"] = *description
		}
	})
	parts := make([]api.FilePart, 0, len(files))
	for _, p := range files {
		parts = append(parts, api.FilePart{Field: "files", Path: p})
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var it model.Item
	if err := c.PostMultipart(ctx, "/items", fields, parts, &it); err != nil {
		return explain(err)
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:     %s\n", it.ID)
	fmt.Fprintf(Out, "  name:   %s\n", it.Name)
	if len(it.ImageIDs) > 0 {
		fmt.Fprintf(Out, "  images: %s\n", strings.Join(it.ImageIDs, ","))
	}
	return nil
}

func init() { RegisterCmd(itemAddCmd{}) }
