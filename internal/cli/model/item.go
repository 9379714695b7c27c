package model

import "time"

// Item - item в том виде, в котором его отдаёт сервер.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Price       float64      `json:"price"`
	Quantity    int64        `json:"quantity"`
	OwnerID     int64        `json:"owner_id"`
	OwnerEmail  string       `json:"owner_email,omitempty"`
	ImageIDs    []string     `json:"image_ids"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Attachment - описание вложения в ответе GET /items/{id}.
type Attachment struct {
	FileID      string `json:"file_id"`
	Missing     bool   `json:"missing"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Length      int64  `json:"length"`
}

// DeleteResult - ответ на удаление item с исходами каскада.
type DeleteResult struct {
	Message     string `json:"message"`
	ItemID      string `json:"item_id"`
	Attachments []struct {
		BlobID  string `json:"blob_id"`
		Outcome string `json:"outcome"`
	} `json:"attachments"`
}
