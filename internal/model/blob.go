package model

import (
	"strconv"
	"time"
)

// Ключи метаданных blob.
const (
	MetaContentType = "content_type"
	MetaOwnerID     = "owner_id"

	DefaultContentType = "application/octet-stream"
)

// Blob - запись каталога бинарных объектов. Сами байты лежат в object storage
// по StorageKey; владелец и content-type хранятся как метаданные, а не как
// отдельные индексируемые колонки.
type Blob struct {
	ID         string            `gorm:"primaryKey;type:uuid"`
	Filename   string            `gorm:"not null"`
	Length     int64             `gorm:"not null"`
	StorageKey string            `gorm:"not null"`
	Metadata   map[string]string `gorm:"serializer:json;type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"` // дата загрузки
}

// ContentType возвращает content-type из метаданных.
func (b *Blob) ContentType() string {
	if ct := b.Metadata[MetaContentType]; ct != "" {
		return ct
	}
	return DefaultContentType
}

// OwnerID реализует Ownable. Нечитаемый owner_id даёт 0, что не совпадает ни с одним пользователем.
func (b *Blob) OwnerID() int64 {
	id, err := strconv.ParseInt(b.Metadata[MetaOwnerID], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
