package handlers

import (
	"GophMart/internal/model"
	"GophMart/internal/service"
	"time"
)

type itemResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Price       float64              `json:"price"`
	Quantity    int64                `json:"quantity"`
	OwnerID     int64                `json:"owner_id"`
	OwnerEmail  string               `json:"owner_email,omitempty"`
	ImageIDs    []string             `json:"image_ids"`
	Attachments []attachmentResponse `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type attachmentResponse struct {
	FileID      string `json:"file_id"`
	Missing     bool   `json:"missing"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Length      int64  `json:"length,omitempty"`
	UploadDate  string `json:"upload_date,omitempty"`
}

type fileResponse struct {
	FileID      string `json:"file_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	UploadDate  string `json:"upload_date"`
	Length      int64  `json:"length"`
	Message     string `json:"message,omitempty"`
}

func newItemResponse(it *model.Item) itemResponse {
	ids := it.ImageIDs
	if ids == nil {
		ids = []string{}
	}
	return itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Quantity:    it.Quantity,
		OwnerID:     it.UserID,
		ImageIDs:    ids,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func newItemsResponse(items []model.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, newItemResponse(&items[i]))
	}
	return out
}

func newAttachmentsResponse(views []service.AttachmentView) []attachmentResponse {
	out := make([]attachmentResponse, 0, len(views))
	for _, v := range views {
		a := attachmentResponse{FileID: v.ID, Missing: v.Missing}
		if v.Blob != nil {
			a.Filename = v.Blob.Filename
			a.ContentType = v.Blob.ContentType
			a.Length = v.Blob.Length
			a.UploadDate = v.Blob.CreatedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, a)
	}
	return out
}

func newFileResponse(ref *service.BlobRef, message string) fileResponse {
	return fileResponse{
		FileID:      ref.ID,
		Filename:    ref.Filename,
		ContentType: ref.ContentType,
		UploadDate:  ref.CreatedAt.UTC().Format(time.RFC3339),
		Length:      ref.Length,
		Message:     message,
	}
}
