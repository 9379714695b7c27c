package commands

import (
	"GophMart/internal/cli/api"
	"GophMart/internal/cli/model"
	"GophMart/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Загрузить файл" }
func (uploadCmd) Usage() string       { return "upload <path>" }

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var f model.File
	if err := c.PostMultipart(ctx, "/uploadfile", nil, []api.FilePart{{Field: "file", Path: args[0]}}, &f); err != nil {
		if api.StatusOf(err) == http.StatusRequestEntityTooLarge {
			return fmt.Errorf("file is larger than the server limit: %w", err)
		}
		return explain(err)
	}
	fmt.Fprintf(Out, "✓ %s uploaded: file_id=%s size=%d type=%s\n", f.Filename, f.FileID, f.Length, f.ContentType)
	return nil
}

type downloadCmd struct{}

func (downloadCmd) Name() string        { return "download" }
func (downloadCmd) Description() string { return "Скачать файл (без входа)" }
func (downloadCmd) Usage() string       { return "download <file-id> [<dest>]" }

func (downloadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	dir := "."
	if len(args) == 2 {
		dir = filepath.Dir(args[1])
	}
	// пишем во временный файл рядом с целью и переименовываем, когда известно имя
	tmp, err := os.CreateTemp(dir, ".gmcli-download-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	name, n, err := anonClient(cfg).Download(ctx, "/file/"+url.PathEscape(args[0]), tmp)
	if err != nil {
		return explain(err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	dest := filepath.Join(dir, name)
	if len(args) == 2 {
		dest = args[1]
	} else if name == "" || name == "." || name == string(filepath.Separator) {
		dest = args[0]
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}
	fmt.Fprintf(Out, "✓ saved %s (%d bytes)\n", dest, n)
	return nil
}

type fileDeleteCmd struct{}

func (fileDeleteCmd) Name() string        { return "file-delete" }
func (fileDeleteCmd) Description() string { return "Удалить свой файл" }
func (fileDeleteCmd) Usage() string       { return "file-delete <file-id>" }

func (fileDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	if err := c.DoJSON(ctx, http.MethodDelete, "/file/"+url.PathEscape(args[0]), nil, nil); err != nil {
		return explain(err)
	}
	fmt.Fprintf(Out, "File deleted: %s\n", args[0])
	return nil
}

type filesCmd struct{}

func (filesCmd) Name() string        { return "files" }
func (filesCmd) Description() string { return "Показать свои файлы" }
func (filesCmd) Usage() string       { return "files" }

func (filesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var list []model.File
	if err := c.DoJSON(ctx, http.MethodGet, "/user/files", nil, &list); err != nil {
		return explain(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет файлов")
		return nil
	}
	for _, f := range list {
		fmt.Fprintf(Out, "- %s  %s  %s  %d bytes  %s\n", f.FileID, f.Filename, f.ContentType, f.Length, f.UploadDate)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type sweepCmd struct{}

func (sweepCmd) Name() string        { return "sweep" }
func (sweepCmd) Description() string { return "Удалить свои файлы, не привязанные ни к одному item" }
func (sweepCmd) Usage() string       { return "sweep [--dry-run] [--older-than=24h]" }

func (sweepCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("sweep")
	dryRun := fs.Bool("dry-run", false, "только показать кандидатов")
	olderThan := fs.Duration("older-than", 0, "минимальный возраст файла")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || *olderThan < 0 {
		return ErrUsage
	}
	q := url.Values{}
	q.Set("dry_run", fmt.Sprint(*dryRun))
	if *olderThan > 0 {
		q.Set("older_than", olderThan.String())
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var res model.SweepResult
	if err := c.DoJSON(ctx, http.MethodPost, "/user/files/sweep?"+q.Encode(), nil, &res); err != nil {
		return explain(err)
	}
	for _, id := range res.Candidates {
		fmt.Fprintf(Out, "  orphan %s\n", id)
	}
	if res.DryRun {
		fmt.Fprintf(Out, "Dry run: %d orphaned file(s)\n", res.CandidateCount)
		return nil
	}
	fmt.Fprintf(Out, "Deleted %d of %d orphaned file(s), failed %d, reclaimed %d bytes\n",
		res.DeletedCount, res.CandidateCount, res.FailedCount, res.ReclaimedBytes)
	return nil
}

func init() {
	RegisterCmd(uploadCmd{})
	RegisterCmd(downloadCmd{})
	RegisterCmd(fileDeleteCmd{})
	RegisterCmd(filesCmd{})
	RegisterCmd(sweepCmd{})
}
