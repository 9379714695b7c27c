package repo

import (
	"GophMart/internal/model"
	"context"

	"gorm.io/gorm"
)

// ItemRepository - доступ к коллекции items. Проверки владения делает сервис.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	// ListAll возвращает все items в порядке создания.
	ListAll(ctx context.Context) ([]model.Item, error)
	ListByOwner(ctx context.Context, userID int64) ([]model.Item, error)
	// Update перезаписывает изменяемые поля. Удалённая запись даёт model.ErrNotFound.
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id string) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(it).Error)
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).Take(&it, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &it, nil
}

func (r *itemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *itemRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// Update не делает upsert: Save вставил бы заново запись, удалённую параллельным запросом.
func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	tx := r.db.WithContext(ctx).
		Model(it).
		Select("name", "description", "price", "quantity", "image_ids", "updated_at").
		Updates(it)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
