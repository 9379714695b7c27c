package handlers_test

import (
	"GophMart/internal/auth"
	"GophMart/internal/config"
	"GophMart/internal/handlers"
	"GophMart/internal/repo"
	"GophMart/internal/service"
	"GophMart/internal/storage/memory"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	router http.Handler
	store  *memory.Backend
	cfg    *config.Config
}

// newTestApp собирает роутер поверх SQLite в памяти и memory-хранилища файлов.
func newTestApp(t *testing.T, gatherer prometheus.Gatherer) *testApp {
	t.Helper()
	cfg := &config.Config{
		AuthSecret:    "test-secret",
		AuthAlgorithm: "HS256",
		TokenTTLMin:   30,
		BlobMaxSizeMB: 1,
		CORSOrigin:    "*",
	}
	logger := zap.NewNop().Sugar()

	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	tokens, err := auth.NewTokenService(cfg.AuthSecret, cfg.AuthAlgorithm, cfg.TokenTTL())
	require.NoError(t, err)

	users := repo.NewUserRepository(db)
	items := repo.NewItemRepository(db)
	store := memory.New()

	blobSvc := service.NewBlobService(repo.NewBlobRepository(db), store, logger, nil)
	itemSvc := service.NewItemService(items, blobSvc, logger, nil, service.ItemOptions{})
	h := handlers.NewHandler(handlers.Services{
		Users:       service.NewUserService(users, tokens),
		Identity:    service.NewIdentityResolver(tokens, users),
		Items:       itemSvc,
		Blobs:       blobSvc,
		Attachments: service.NewAttachmentService(itemSvc, items, blobSvc, logger, nil),
	}, nil, gatherer, logger, cfg)

	return &testApp{router: h.Router, store: store, cfg: cfg}
}

func (a *testApp) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testApp) doJSON(t *testing.T, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	return a.do(t, method, path, token, r, "application/json")
}

// login регистрирует пользователя и возвращает его токен.
func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	creds := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rr := a.doJSON(t, http.MethodPost, "/signup", "", creds)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = a.doJSON(t, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tok))
	require.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

type filePart struct {
	field, name, contentType string
	data                     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		hdr.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

type itemJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Quantity    int64    `json:"quantity"`
	OwnerID     int64    `json:"owner_id"`
	OwnerEmail  string   `json:"owner_email"`
	ImageIDs    []string `json:"image_ids"`
	Attachments []struct {
		FileID   string `json:"file_id"`
		Missing  bool   `json:"missing"`
		Filename string `json:"filename"`
	} `json:"attachments"`
}

func decodeItem(t *testing.T, rr *httptest.ResponseRecorder) itemJSON {
	t.Helper()
	var it itemJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &it), rr.Body.String())
	return it
}

func (a *testApp) createItem(t *testing.T, token string, fields map[string]string, files ...filePart) itemJSON {
	t.Helper()
	body, ct := multipartBody(t, fields, files...)
	rr := a.do(t, http.MethodPost, "/items", token, body, ct)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeItem(t, rr)
}

func (a *testApp) upload(t *testing.T, token, name string, data []byte) string {
	t.Helper()
	body, ct := multipartBody(t, nil, filePart{field: "file", name: name, contentType: "text/plain", data: data})
	rr := a.do(t, http.MethodPost, "/uploadfile", token, body, ct)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var f struct {
		FileID string `json:"file_id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	return f.FileID
}

func widget() map[string]string {
	return map[string]string{"name": "Widget", "price": "9.99", "quantity": "3"}
}
