package service

import (
	"GophMart/internal/model"
	"GophMart/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.ItemRepository
type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Item, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

// мок для repo.BlobRepository
type mockBlobRepo struct{ mock.Mock }

func (m *mockBlobRepo) Create(ctx context.Context, b *model.Blob) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBlobRepo) GetByID(ctx context.Context, id string) (*model.Blob, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Blob); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBlobRepo) ListAll(ctx context.Context) ([]model.Blob, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Blob); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBlobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.BlobRepository = (*mockBlobRepo)(nil)

// хелперы
func ptrStr(s string) *string        { return &s }
func ptrFloat(v float64) *float64    { return &v }
func ptrInt64(v int64) *int64        { return &v }
func ptrIDs(ids ...string) *[]string { return &ids }
