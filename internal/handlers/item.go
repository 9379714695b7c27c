package handlers

import (
	"GophMart/internal/config"
	"GophMart/internal/model"
	"GophMart/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const multipartMemory = 10 << 20

// ItemHandler - CRUD items.
type ItemHandler struct {
	ItemService *service.ItemService
	BlobService *service.BlobService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, blobService *service.BlobService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, BlobService: blobService, Logger: logger, Config: cfg}
}

// bodyLimit - предел тела запроса с файлами: лимит файла плюс запас на поля формы.
func bodyLimit(cfg *config.Config) int64 {
	return int64(cfg.BlobMaxSizeMB)*1024*1024 + 1*1024*1024
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// parseItemForm читает name, description, price, quantity из multipart-формы.
func parseItemForm(r *http.Request) (service.ItemFields, error) {
	var f service.ItemFields
	f.Name = r.FormValue("name")
	// пустое поле формы - то же, что его отсутствие
	if desc, ok := r.MultipartForm.Value["description"]; ok && len(desc) > 0 && desc[0] != "" {
		d := desc[0]
		f.Description = &d
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil {
		return f, fmt.Errorf("%w: price must be a number", model.ErrInvalidInput)
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("quantity")), 10, 64)
	if err != nil {
		return f, fmt.Errorf("%w: quantity must be an integer", model.ErrInvalidInput)
	}
	f.Price = price
	f.Quantity = quantity
	return f, service.ValidateFields(f)
}

// Create создаёт item; файлы из частей "files" загружаются и сразу привязываются.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit(h.Config))
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		h.Logger.Warnw("Create item: invalid multipart form", "error", err)
		writeDetail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	fields, err := parseItemForm(r)
	if err != nil {
		writeError(w, h.Logger, "Create item", err)
		return
	}

	uploaded := make([]string, 0, len(r.MultipartForm.File["files"]))
	for _, fh := range r.MultipartForm.File["files"] {
		if fh.Filename == "" {
			continue
		}
		ref, err := h.uploadPart(r, fh, user.ID)
		if err != nil {
			h.rollback(r, uploaded, user.ID)
			writeError(w, h.Logger, "Create item", err)
			return
		}
		uploaded = append(uploaded, ref.ID)
	}

	it, err := h.ItemService.Create(r.Context(), user.ID, fields, uploaded)
	if err != nil {
		h.rollback(r, uploaded, user.ID)
		writeError(w, h.Logger, "Create item", err)
		return
	}
	h.Logger.Infow("item created", "item_id", it.ID, "user_id", user.ID, "images", len(uploaded))
	writeJSON(w, http.StatusCreated, newItemResponse(it))
}

func (h *ItemHandler) uploadPart(r *http.Request, fh *multipart.FileHeader, ownerID int64) (*service.BlobRef, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open part: %v", model.ErrStorageFault, err)
	}
	defer f.Close()
	return h.BlobService.Put(r.Context(), f, fh.Filename, fh.Header.Get("Content-Type"), ownerID)
}

// rollback удаляет файлы, загруженные под item, который так и не создался.
func (h *ItemHandler) rollback(r *http.Request, blobIDs []string, ownerID int64) {
	for _, id := range blobIDs {
		if err := h.BlobService.Delete(r.Context(), id, ownerID); err != nil {
			h.Logger.Warnw("Create item: rollback of uploaded file failed", "blob_id", id, "error", err)
		}
	}
}

// ListAll - все items, без аутентификации
func (h *ItemHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.ListAll(r.Context())
	if err != nil {
		writeError(w, h.Logger, "List items", err)
		return
	}
	writeJSON(w, http.StatusOK, newItemsResponse(items))
}

// ListMine - items текущего пользователя
func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.ItemService.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.Logger, "List user items", err)
		return
	}
	writeJSON(w, http.StatusOK, newItemsResponse(items))
}

// Get отдаёт item только владельцу, с email владельца и описанием вложений.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	it, err := h.ItemService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "Get item", err)
		return
	}
	if it.OwnerID() != user.ID {
		writeError(w, h.Logger, "Get item", model.ErrForbidden)
		return
	}

	resp := newItemResponse(it)
	resp.OwnerEmail = user.Email
	resp.Attachments = newAttachmentsResponse(h.ItemService.ResolveAttachments(r.Context(), it))
	writeJSON(w, http.StatusOK, resp)
}

// parsePatch разбирает JSON частичного обновления: отсутствующий ключ не трогает поле,
// null в description очищает его, null в image_ids даёт пустой набор.
func parsePatch(r *http.Request) (service.ItemPatch, error) {
	var p service.ItemPatch
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return p, fmt.Errorf("%w: invalid JSON body", model.ErrInvalidInput)
	}

	isNull := func(v json.RawMessage) bool { return strings.TrimSpace(string(v)) == "null" }
	field := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		if isNull(v) {
			return fmt.Errorf("%w: %s must not be null", model.ErrInvalidInput, key)
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("%w: invalid %s", model.ErrInvalidInput, key)
		}
		return nil
	}

	if _, ok := raw["name"]; ok {
		p.Name = new(string)
		if err := field("name", p.Name); err != nil {
			return p, err
		}
	}
	if _, ok := raw["price"]; ok {
		p.Price = new(float64)
		if err := field("price", p.Price); err != nil {
			return p, err
		}
	}
	if _, ok := raw["quantity"]; ok {
		p.Quantity = new(int64)
		if err := field("quantity", p.Quantity); err != nil {
			return p, err
		}
	}
	if v, ok := raw["description"]; ok {
		if isNull(v) {
			p.ClearDescription = true
		} else {
			p.Description = new(string)
			if err := field("description", p.Description); err != nil {
				return p, err
			}
		}
	}
	if v, ok := raw["image_ids"]; ok {
		ids := []string{}
		if !isNull(v) {
			if err := json.Unmarshal(v, &ids); err != nil {
				return p, fmt.Errorf("%w: image_ids must be a list of ids", model.ErrInvalidInput)
			}
		}
		p.AttachmentIDs = &ids
	}
	return p, nil
}

// Update - частичное обновление владельцем
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	patch, err := parsePatch(r)
	if err != nil {
		writeError(w, h.Logger, "Update item", err)
		return
	}
	it, err := h.ItemService.Update(r.Context(), chi.URLParam(r, "id"), user.ID, patch)
	if err != nil {
		writeError(w, h.Logger, "Update item", err)
		return
	}
	writeJSON(w, http.StatusOK, newItemResponse(it))
}

type deleteItemResponse struct {
	Message string `json:"message"`
	*service.DeleteResult
}

// Delete удаляет item и по возможности его файлы
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	res, err := h.ItemService.Delete(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, h.Logger, "Delete item", err)
		return
	}
	writeJSON(w, http.StatusOK, deleteItemResponse{Message: "Item deleted successfully", DeleteResult: res})
}
