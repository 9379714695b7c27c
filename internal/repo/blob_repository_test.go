package repo

import (
	"GophMart/internal/model"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkBlob(owner int64, created time.Time) *model.Blob {
	id := uuid.NewString()
	return &model.Blob{
		ID:         id,
		Filename:   "f.png",
		Length:     3,
		StorageKey: "blobs/" + id,
		Metadata: map[string]string{
			model.MetaOwnerID:     strconv.FormatInt(owner, 10),
			model.MetaContentType: "image/png",
		},
		CreatedAt: created.UTC(),
	}
}

func TestBlobRepository_CreateGetDelete(t *testing.T) {
	db := newTestDB(t)
	r := NewBlobRepository(db)
	ctx := context.Background()

	b := mkBlob(7, time.Now())
	require.NoError(t, r.Create(ctx, b))

	got, err := r.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "f.png", got.Filename)
	assert.Equal(t, int64(3), got.Length)
	assert.Equal(t, int64(7), got.OwnerID())
	assert.Equal(t, "image/png", got.ContentType())

	// повторный id - ошибка хранилища
	err = r.Create(ctx, mkBlobWithID(b.ID))
	assert.ErrorIs(t, err, model.ErrStorageFault)

	require.NoError(t, r.Delete(ctx, b.ID))
	_, err = r.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, b.ID), model.ErrNotFound)
}

func TestBlobRepository_ListAll(t *testing.T) {
	db := newTestDB(t)
	r := NewBlobRepository(db)
	ctx := context.Background()

	older := mkBlob(1, time.Now().Add(-time.Hour))
	newer := mkBlob(2, time.Now())
	require.NoError(t, r.Create(ctx, newer))
	require.NoError(t, r.Create(ctx, older))

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	if assert.Len(t, all, 2) {
		assert.Equal(t, older.ID, all[0].ID)
		assert.Equal(t, newer.ID, all[1].ID)
	}
}

func mkBlobWithID(id string) *model.Blob {
	b := mkBlob(1, time.Now())
	b.ID = id
	return b
}
