package model

import "time"

// User - учётная запись владельца items и blobs.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"not null;uniqueIndex"` // регистрозависимый ключ
	Password string `gorm:"not null"`             // bcrypt hash, наружу не отдаётся
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
