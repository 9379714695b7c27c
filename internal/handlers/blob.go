package handlers

import (
	"GophMart/internal/config"
	"GophMart/internal/model"
	"GophMart/internal/service"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BlobHandler - загрузка, скачивание и удаление файлов.
type BlobHandler struct {
	BlobService       *service.BlobService
	AttachmentService *service.AttachmentService
	Logger            *zap.SugaredLogger
	Config            *config.Config
}

func NewBlobHandler(blobService *service.BlobService, attachments *service.AttachmentService, logger *zap.SugaredLogger, cfg *config.Config) *BlobHandler {
	return &BlobHandler{BlobService: blobService, AttachmentService: attachments, Logger: logger, Config: cfg}
}

// Upload загрузка одного файла из части "file"
func (h *BlobHandler) Upload(w http.ResponseWriter, r *http.Request) {
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
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		writeDetail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, fh, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warnw("Upload: missing file part", "error", err)
		writeDetail(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	ref, err := h.BlobService.Put(r.Context(), file, fh.Filename, fh.Header.Get("Content-Type"), user.ID)
	if err != nil {
		writeError(w, h.Logger, "Upload", err)
		return
	}
	h.Logger.Infow("file uploaded", "blob_id", ref.ID, "user_id", user.ID, "size", ref.Length)
	writeJSON(w, http.StatusOK, newFileResponse(ref, "File uploaded successfully"))
}

// Download стримит содержимое файла. Доступен без аутентификации.
func (h *BlobHandler) Download(w http.ResponseWriter, r *http.Request) {
	rc, b, err := h.BlobService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "Download", err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", b.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": b.Filename}))
	w.Header().Set("Content-Length", strconv.FormatInt(b.Length, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warnw("Download: stream interrupted", "blob_id", b.ID, "error", err)
	}
}

// Delete удаляет файл владельца. Ссылки из items остаются.
func (h *BlobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.BlobService.Delete(r.Context(), id, user.ID); err != nil {
		writeError(w, h.Logger, "Delete file", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully", "file_id": id})
}

// ListMine - файлы текущего пользователя
func (h *BlobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	blobs, err := h.BlobService.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.Logger, "List files", err)
		return
	}
	out := make([]fileResponse, 0, len(blobs))
	for i := range blobs {
		out = append(out, fileResponse{
			FileID:      blobs[i].ID,
			Filename:    blobs[i].Filename,
			ContentType: blobs[i].ContentType(),
			UploadDate:  blobs[i].CreatedAt.UTC().Format(time.RFC3339),
			Length:      blobs[i].Length,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Sweep удаляет осиротевшие файлы пользователя. Параметры: older_than (duration), dry_run (bool).
func (h *BlobHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var olderThan time.Duration
	if v := q.Get("older_than"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			writeError(w, h.Logger, "Sweep", fmt.Errorf("%w: invalid older_than %q", model.ErrInvalidInput, v))
			return
		}
		olderThan = d
	}
	dryRun := false
	if v := q.Get("dry_run"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, h.Logger, "Sweep", fmt.Errorf("%w: invalid dry_run %q", model.ErrInvalidInput, v))
			return
		}
		dryRun = b
	}

	res, err := h.AttachmentService.Sweep(r.Context(), user.ID, olderThan, dryRun)
	if err != nil {
		writeError(w, h.Logger, "Sweep", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
