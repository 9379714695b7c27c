package service

import (
	"GophMart/internal/metrics"
	"GophMart/internal/model"
	"GophMart/internal/repo"
	"GophMart/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlobRef - описание сохранённого blob, перечитанное из каталога после записи.
type BlobRef struct {
	ID          string
	Filename    string
	ContentType string
	Length      int64
	CreatedAt   time.Time
}

func refFromBlob(b *model.Blob) *BlobRef {
	return &BlobRef{
		ID:          b.ID,
		Filename:    b.Filename,
		ContentType: b.ContentType(),
		Length:      b.Length,
		CreatedAt:   b.CreatedAt,
	}
}

// BlobService - адаптер хранилища вложений: байты в storage.ObjectStore, метаданные в каталоге blobs.
type BlobService struct {
	repo    repo.BlobRepository
	store   storage.ObjectStore
	logger  *zap.SugaredLogger
	metrics metrics.Recorder
}

func NewBlobService(r repo.BlobRepository, store storage.ObjectStore, logger *zap.SugaredLogger, m metrics.Recorder) *BlobService {
	if m == nil {
		m = metrics.Nop{}
	}
	return &BlobService{repo: r, store: store, logger: logger, metrics: m}
}

// Put стримит содержимое в хранилище и регистрирует blob с метаданными {content_type, owner_id}.
// Частично записанный blob не становится видимым.
func (s *BlobService) Put(ctx context.Context, r io.Reader, filename, contentType string, ownerID int64) (*BlobRef, error) {
	if contentType == "" {
		contentType = model.DefaultContentType
	}
	id := uuid.NewString()
	key := storage.ObjectKey(id)

	n, err := s.store.Put(ctx, key, r, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: put object: %v", model.ErrStorageFault, err)
	}

	b := &model.Blob{
		ID:         id,
		Filename:   filename,
		Length:     n,
		StorageKey: key,
		Metadata: map[string]string{
			model.MetaContentType: contentType,
			model.MetaOwnerID:     strconv.FormatInt(ownerID, 10),
		},
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warnw("blob put: failed to remove object after catalogue error", "blob_id", id, "error", delErr)
		}
		return nil, fmt.Errorf("%w: register blob: %v", model.ErrStorageFault, err)
	}

	// перечитываем: длина и дата - значения хранилища, а не клиента
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: re-read blob: %v", model.ErrStorageFault, err)
	}
	s.metrics.RecordBlobUploaded(stored.Length)
	return refFromBlob(stored), nil
}

// Stat возвращает метаданные blob без открытия содержимого.
func (s *BlobService) Stat(ctx context.Context, id string) (*model.Blob, error) {
	id, err := parseID("blob", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Get открывает поток чтения. Поток закрывает вызывающий.
func (s *BlobService) Get(ctx context.Context, id string) (io.ReadCloser, *model.Blob, error) {
	b, err := s.Stat(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, b.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: blob %s has no content", model.ErrNotFound, b.ID)
		}
		return nil, nil, fmt.Errorf("%w: open object: %v", model.ErrStorageFault, err)
	}
	return rc, b, nil
}

// Delete удаляет blob владельца. Ссылки из items не трогает.
func (s *BlobService) Delete(ctx context.Context, id string, requesterID int64) error {
	b, err := s.Stat(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(requesterID, b); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, b.StorageKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("%w: delete object: %v", model.ErrStorageFault, err)
	}
	return s.repo.Delete(ctx, b.ID)
}

// ListByOwner - просмотр каталога с фильтром по owner_id из метаданных.
func (s *BlobService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Blob, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Blob, 0)
	for _, b := range all {
		if b.OwnerID() == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}
