package service

import (
	"GophMart/internal/metrics"
	"GophMart/internal/model"
	"GophMart/internal/repo"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Исходы удаления вложения при каскаде.
const (
	CascadeDeleted   = "deleted"
	CascadeNotFound  = "not_found"
	CascadeForbidden = "forbidden"
	CascadeFailed    = "failed"
)

// ItemFields - поля нового item.
type ItemFields struct {
	Name        string
	Description *string
	Price       float64
	Quantity    int64
}

// ItemPatch - частичное обновление. nil - ключ не передан.
type ItemPatch struct {
	Name             *string
	Description      *string
	ClearDescription bool // description: null
	Price            *float64
	Quantity         *int64
	AttachmentIDs    *[]string // image_ids: null приходит сюда как пустой набор
}

// Empty - в патче нет ни одного ключа.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && !p.ClearDescription &&
		p.Price == nil && p.Quantity == nil && p.AttachmentIDs == nil
}

// CascadeOutcome - результат удаления одного вложения.
type CascadeOutcome struct {
	BlobID  string `json:"blob_id"`
	Outcome string `json:"outcome"`
	Err     error  `json:"-"`
}

// DeleteResult - итог удаления item. Item удалён, даже если часть вложений не удалилась.
type DeleteResult struct {
	ItemID      string           `json:"item_id"`
	Attachments []CascadeOutcome `json:"attachments"`
}

// AttachmentView - вложение item; Missing, если blob уже удалён напрямую.
type AttachmentView struct {
	ID      string
	Missing bool
	Blob    *BlobRef
}

// ItemOptions - политики ItemService.
type ItemOptions struct {
	// VerifyAttachmentOwnershipOnUpdate - проверять владение новыми image_ids в Update.
	VerifyAttachmentOwnershipOnUpdate bool
}

// ItemService - жизненный цикл items с проверкой владения и каскадом на blobs.
type ItemService struct {
	repo    repo.ItemRepository
	blobs   *BlobService
	logger  *zap.SugaredLogger
	metrics metrics.Recorder
	opts    ItemOptions
}

func NewItemService(r repo.ItemRepository, blobs *BlobService, logger *zap.SugaredLogger, m metrics.Recorder, opts ItemOptions) *ItemService {
	if m == nil {
		m = metrics.Nop{}
	}
	return &ItemService{repo: r, blobs: blobs, logger: logger, metrics: m, opts: opts}
}

// ValidateFields проверяет поля нового item до каких-либо записей.
func ValidateFields(f ItemFields) error {
	return validateFields(f.Name, f.Price, f.Quantity)
}

func validateFields(name string, price float64, quantity int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: price must be a non-negative number", model.ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", model.ErrInvalidInput)
	}
	return nil
}

// Create сохраняет item владельца ownerID. Набор вложений дедуплицируется.
func (s *ItemService) Create(ctx context.Context, ownerID int64, f ItemFields, attachmentIDs []string) (*model.Item, error) {
	if err := ValidateFields(f); err != nil {
		return nil, err
	}
	ids, err := normalizeIDs(attachmentIDs)
	if err != nil {
		return nil, err
	}
	it := &model.Item{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Quantity:    f.Quantity,
		ImageIDs:    ids,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Get не ограничивает чтение владельцем: политику применяет вызывающий.
func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	id, err := parseID("item", id)
	if err != nil {
		return nil, err
	}
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalizeItem(it)
	return it, nil
}

func (s *ItemService) ListAll(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		normalizeItem(&items[i])
	}
	return items, nil
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		normalizeItem(&items[i])
	}
	return items, nil
}

// getOwned - item существует и принадлежит requesterID.
func (s *ItemService) getOwned(ctx context.Context, id string, requesterID int64) (*model.Item, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(requesterID, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update применяет патч целиком или не применяет вовсе.
func (s *ItemService) Update(ctx context.Context, id string, requesterID int64, p ItemPatch) (*model.Item, error) {
	if p.Empty() {
		return nil, fmt.Errorf("%w: no update data provided", model.ErrInvalidInput)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", model.ErrInvalidInput)
	}
	if p.Price != nil && (*p.Price < 0 || math.IsNaN(*p.Price) || math.IsInf(*p.Price, 0)) {
		return nil, fmt.Errorf("%w: price must be a non-negative number", model.ErrInvalidInput)
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", model.ErrInvalidInput)
	}
	var ids []string
	if p.AttachmentIDs != nil {
		var err error
		if ids, err = normalizeIDs(*p.AttachmentIDs); err != nil {
			return nil, err
		}
	}

	it, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if p.AttachmentIDs != nil && s.opts.VerifyAttachmentOwnershipOnUpdate {
		for _, blobID := range ids {
			if it.HasImage(blobID) {
				continue
			}
			b, err := s.blobs.Stat(ctx, blobID)
			if err != nil {
				return nil, err
			}
			if err := authorize(requesterID, b); err != nil {
				return nil, err
			}
		}
	}

	if p.Name != nil {
		it.Name = *p.Name
	}
	switch {
	case p.ClearDescription:
		it.Description = nil
	case p.Description != nil:
		it.Description = p.Description
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.AttachmentIDs != nil {
		it.ImageIDs = ids
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Delete удаляет item владельца. Каждое вложение удаляется по возможности: ошибки
// логируются и попадают в DeleteResult, но удаление item не прерывают.
func (s *ItemService) Delete(ctx context.Context, id string, requesterID int64) (*DeleteResult, error) {
	it, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	res := &DeleteResult{ItemID: it.ID, Attachments: make([]CascadeOutcome, 0, len(it.ImageIDs))}
	for _, blobID := range it.ImageIDs {
		out := CascadeOutcome{BlobID: blobID, Outcome: CascadeDeleted}
		if err := s.blobs.Delete(ctx, blobID, requesterID); err != nil {
			out.Err = err
			switch {
			case errors.Is(err, model.ErrNotFound):
				out.Outcome = CascadeNotFound
			case errors.Is(err, model.ErrForbidden):
				out.Outcome = CascadeForbidden
			default:
				out.Outcome = CascadeFailed
			}
			s.logger.Warnw("cascade delete: attachment skipped",
				"item_id", it.ID, "blob_id", blobID, "outcome", out.Outcome, "error", err)
		}
		s.metrics.RecordCascadeOutcome(out.Outcome)
		res.Attachments = append(res.Attachments, out)
	}

	if err := s.repo.Delete(ctx, it.ID); err != nil {
		return nil, err
	}
	return res, nil
}

// ResolveAttachments разворачивает image_ids в описания blobs. Отсутствующий blob
// даёт Missing=true, а не ошибку; прочие ошибки каталога тоже помечаются Missing и логируются.
func (s *ItemService) ResolveAttachments(ctx context.Context, it *model.Item) []AttachmentView {
	views := make([]AttachmentView, 0, len(it.ImageIDs))
	for _, id := range it.ImageIDs {
		b, err := s.blobs.Stat(ctx, id)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				s.logger.Warnw("resolve attachment failed", "item_id", it.ID, "blob_id", id, "error", err)
			}
			views = append(views, AttachmentView{ID: id, Missing: true})
			continue
		}
		views = append(views, AttachmentView{ID: id, Blob: refFromBlob(b)})
	}
	return views
}

func normalizeItem(it *model.Item) {
	if it.ImageIDs == nil {
		it.ImageIDs = []string{}
	}
}
