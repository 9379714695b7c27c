package repo

import (
	"GophMart/internal/model"
	"context"

	"gorm.io/gorm"
)

// BlobRepository - каталог blobs: метаданные без самих байтов.
type BlobRepository interface {
	Create(ctx context.Context, b *model.Blob) error
	GetByID(ctx context.Context, id string) (*model.Blob, error)
	// ListAll возвращает весь каталог. owner_id лежит в метаданных и не индексируется,
	// поэтому фильтрация по владельцу - просмотром.
	ListAll(ctx context.Context) ([]model.Blob, error)
	Delete(ctx context.Context, id string) error
}

type blobRepo struct {
	db *gorm.DB
}

// NewBlobRepository создаёт реализацию репозитория для Blob.
func NewBlobRepository(db *gorm.DB) BlobRepository {
	return &blobRepo{db: db}
}

func (r *blobRepo) Create(ctx context.Context, b *model.Blob) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *blobRepo) GetByID(ctx context.Context, id string) (*model.Blob, error) {
	var b model.Blob
	if err := r.db.WithContext(ctx).Take(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *blobRepo) ListAll(ctx context.Context) ([]model.Blob, error) {
	var blobs []model.Blob
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&blobs).Error; err != nil {
		return nil, translate(err)
	}
	return blobs, nil
}

func (r *blobRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.Blob{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
