package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"GophMart/internal/config"
)

// testConfig указывает CLI на сервер и кладёт токен во временный каталог.
func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{ServerURL: serverURL, TokenFile: filepath.Join(t.TempDir(), "token")}
}

// перехват вывода на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	c, ok := Get(args[0])
	if !ok {
		t.Fatalf("command %s not registered", args[0])
	}
	var err error
	out := withStdoutCapture(t, func() { err = c.Run(context.Background(), cfg, args[1:]) })
	return out, err
}
