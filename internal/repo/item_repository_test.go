package repo

import (
	"GophMart/internal/model"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// хелпер для создания базового item
func mkItem(userID int64, name string, created time.Time) *model.Item {
	return &model.Item{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Price:     1.5,
		Quantity:  2,
		ImageIDs:  []string{},
		CreatedAt: created.UTC(),
	}
}

func TestItemRepository_Create_GetByID(t *testing.T) {
	db := newTestDB(t)
	u := mkUser(t, db, "a@x.com")
	r := NewItemRepository(db)
	ctx := context.Background()

	desc := "blue"
	it := mkItem(u.ID, "Widget", time.Now())
	it.Description = &desc
	it.ImageIDs = []string{"b1", "b2"}
	require.NoError(t, r.Create(ctx, it))

	got, err := r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 1.5, got.Price)
	assert.Equal(t, int64(2), got.Quantity)
	require.NotNil(t, got.Description)
	assert.Equal(t, "blue", *got.Description)
	assert.ElementsMatch(t, []string{"b1", "b2"}, got.ImageIDs)

	_, err = r.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestItemRepository_ListAll_And_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	alice := mkUser(t, db, "alice@x.com")
	bob := mkUser(t, db, "bob@y.com")
	r := NewItemRepository(db)
	ctx := context.Background()

	t1 := time.Now().Add(-3 * time.Hour)
	t2 := time.Now().Add(-2 * time.Hour)
	t3 := time.Now().Add(-1 * time.Hour)

	a2 := mkItem(alice.ID, "a2", t2)
	a1 := mkItem(alice.ID, "a1", t1)
	b3 := mkItem(bob.ID, "b3", t3)
	for _, it := range []*model.Item{a2, a1, b3} {
		require.NoError(t, r.Create(ctx, it))
	}

	// ListAll - все, по возрастанию created_at
	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	if assert.Len(t, all, 3) {
		assert.Equal(t, a1.ID, all[0].ID)
		assert.Equal(t, a2.ID, all[1].ID)
		assert.Equal(t, b3.ID, all[2].ID)
	}

	mine, err := r.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	if assert.Len(t, mine, 2) {
		for _, it := range mine {
			assert.Equal(t, alice.ID, it.UserID)
		}
	}

	none, err := r.ListByOwner(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestItemRepository_Update(t *testing.T) {
	db := newTestDB(t)
	u := mkUser(t, db, "a@x.com")
	r := NewItemRepository(db)
	ctx := context.Background()

	desc := "old"
	it := mkItem(u.ID, "old", time.Now().Add(-time.Minute))
	it.Description = &desc
	require.NoError(t, r.Create(ctx, it))

	// нулевые значения тоже должны записаться
	it.Name = "new"
	it.Description = nil
	it.Price = 0
	it.Quantity = 0
	it.ImageIDs = []string{"x"}
	require.NoError(t, r.Update(ctx, it))

	got, err := r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Nil(t, got.Description)
	assert.Equal(t, 0.0, got.Price)
	assert.Equal(t, int64(0), got.Quantity)
	assert.Equal(t, []string{"x"}, got.ImageIDs)
	assert.Equal(t, u.ID, got.UserID)

	// обновление удалённой записи не воскрешает её
	require.NoError(t, r.Delete(ctx, it.ID))
	err = r.Update(ctx, it)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestItemRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	u := mkUser(t, db, "a@x.com")
	r := NewItemRepository(db)
	ctx := context.Background()

	it := mkItem(u.ID, "gone", time.Now())
	require.NoError(t, r.Create(ctx, it))

	require.NoError(t, r.Delete(ctx, it.ID))
	assert.ErrorIs(t, r.Delete(ctx, it.ID), model.ErrNotFound)
}
