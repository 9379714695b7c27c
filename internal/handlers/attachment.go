package handlers

import (
	"GophMart/internal/config"
	"GophMart/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AttachmentHandler - привязка файлов к items.
type AttachmentHandler struct {
	AttachmentService *service.AttachmentService
	Logger            *zap.SugaredLogger
	Config            *config.Config
}

func NewAttachmentHandler(attachments *service.AttachmentService, logger *zap.SugaredLogger, cfg *config.Config) *AttachmentHandler {
	return &AttachmentHandler{AttachmentService: attachments, Logger: logger, Config: cfg}
}

func (h *AttachmentHandler) Associate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	it, err := h.AttachmentService.Associate(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "image_id"), user.ID)
	if err != nil {
		writeError(w, h.Logger, "Associate image", err)
		return
	}
	writeJSON(w, http.StatusOK, newItemResponse(it))
}

func (h *AttachmentHandler) Disassociate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	it, err := h.AttachmentService.Disassociate(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "image_id"), user.ID)
	if err != nil {
		writeError(w, h.Logger, "Disassociate image", err)
		return
	}
	writeJSON(w, http.StatusOK, newItemResponse(it))
}
