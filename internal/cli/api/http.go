package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client - HTTP-клиент GophMart API. Token, если задан, уходит как Authorization: Bearer.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// Error - ответ сервера со статусом вне 2xx.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

// StatusOf возвращает HTTP-статус из *Error или 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// DetailOf возвращает detail из *Error или "".
func DetailOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Detail string `json:"detail"`
	}
	detail := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	return &Error{Status: resp.StatusCode, Detail: detail}
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeInto(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// DoJSON отправляет payload (если не nil) как JSON и декодирует ответ в out (если не nil).
func (c *Client) DoJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	resp, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return decodeInto(resp, out)
}

// FilePart - файл с диска для multipart-запроса.
type FilePart struct {
	Field string
	Path  string
}

func contentTypeOf(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// PostMultipart стримит поля и файлы формой multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out any) error {
	// файлы открываем заранее, чтобы ошибка пути не уходила в середину запроса
	opened := make([]*os.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fp := range files {
		f, err := os.Open(fp.Path)
		if err != nil {
			return err
		}
		opened = append(opened, f)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeForm(mw, fields, files, opened))
	}()

	resp, err := c.send(ctx, http.MethodPost, path, pr, mw.FormDataContentType())
	_ = pr.Close()
	if err != nil {
		return err
	}
	return decodeInto(resp, out)
}

func writeForm(mw *multipart.Writer, fields map[string]string, files []FilePart, opened []*os.File) error {
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	for i, fp := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     fp.Field,
			"filename": filepath.Base(fp.Path),
		}))
		hdr.Set("Content-Type", contentTypeOf(fp.Path))
		part, err := mw.CreatePart(hdr)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, opened[i]); err != nil {
			return err
		}
	}
	return mw.Close()
}

// Download пишет тело ответа в dst и возвращает имя файла из Content-Disposition.
func (c *Client) Download(ctx context.Context, path string, dst io.Writer) (string, int64, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	filename := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = filepath.Base(params["filename"])
	}
	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return filename, n, err
	}
	return filename, n, nil
}
