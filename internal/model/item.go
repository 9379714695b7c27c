package model

import "time"

// Item - серверная модель товара пользователя.
type Item struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name        string  `gorm:"not null"`
	Description *string // nil - описание не задано
	Price       float64 `gorm:"not null;default:0"`
	Quantity    int64   `gorm:"not null;default:0"`

	// ImageIDs - множество идентификаторов blobs, без дублей, порядок не важен.
	ImageIDs []string `gorm:"serializer:json;type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// OwnerID реализует Ownable.
func (it *Item) OwnerID() int64 { return it.UserID }

// HasImage сообщает, связан ли blob с записью.
func (it *Item) HasImage(blobID string) bool {
	for _, id := range it.ImageIDs {
		if id == blobID {
			return true
		}
	}
	return false
}
