package service

import (
	"GophMart/internal/metrics"
	"GophMart/internal/model"
	"GophMart/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepGrace - blobs моложе этого возраста сборка не трогает.
const DefaultSweepGrace = 24 * time.Hour

// SweepResult - итог сборки осиротевших вложений.
type SweepResult struct {
	CandidateCount int      `json:"candidate_count"`
	DeletedCount   int      `json:"deleted_count"`
	FailedCount    int      `json:"failed_count"`
	ReclaimedBytes int64    `json:"reclaimed_bytes"`
	DryRun         bool     `json:"dry_run"`
	Candidates     []string `json:"candidates"`
}

// AttachmentService связывает и отвязывает blobs от items.
type AttachmentService struct {
	items   *ItemService
	repo    repo.ItemRepository
	blobs   *BlobService
	logger  *zap.SugaredLogger
	metrics metrics.Recorder
	now     func() time.Time
}

func NewAttachmentService(items *ItemService, r repo.ItemRepository, blobs *BlobService, logger *zap.SugaredLogger, m metrics.Recorder) *AttachmentService {
	if m == nil {
		m = metrics.Nop{}
	}
	return &AttachmentService{items: items, repo: r, blobs: blobs, logger: logger, metrics: m, now: time.Now}
}

// Associate добавляет blob в item. Требует владения и blob, и item. Повтор - no-op.
// Сначала проверяется blob: чужой blob даёт 403 даже при несуществующем item.
func (s *AttachmentService) Associate(ctx context.Context, itemID, blobID string, requesterID int64) (*model.Item, error) {
	b, err := s.blobs.Stat(ctx, blobID)
	if err != nil {
		return nil, err
	}
	if err := authorize(requesterID, b); err != nil {
		return nil, err
	}
	it, err := s.items.getOwned(ctx, itemID, requesterID)
	if err != nil {
		return nil, err
	}
	if it.HasImage(b.ID) {
		return it, nil
	}

	it.ImageIDs = append(it.ImageIDs, b.ID)
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Disassociate убирает blob из item. Сам blob остаётся в хранилище.
func (s *AttachmentService) Disassociate(ctx context.Context, itemID, blobID string, requesterID int64) (*model.Item, error) {
	it, err := s.items.getOwned(ctx, itemID, requesterID)
	if err != nil {
		return nil, err
	}
	blobID, err = parseID("image", blobID)
	if err != nil {
		return nil, err
	}
	if !it.HasImage(blobID) {
		return nil, fmt.Errorf("%w: image %s is not associated with item %s", model.ErrNotFound, blobID, it.ID)
	}

	kept := make([]string, 0, len(it.ImageIDs)-1)
	for _, id := range it.ImageIDs {
		if id != blobID {
			kept = append(kept, id)
		}
	}
	it.ImageIDs = kept
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Sweep удаляет blobs владельца, на которые не ссылается ни один item и которые старше olderThan.
// dryRun только считает кандидатов.
func (s *AttachmentService) Sweep(ctx context.Context, ownerID int64, olderThan time.Duration, dryRun bool) (*SweepResult, error) {
	if olderThan <= 0 {
		olderThan = DefaultSweepGrace
	}
	cutoff := s.now().Add(-olderThan)

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]struct{})
	for _, it := range items {
		for _, id := range it.ImageIDs {
			referenced[id] = struct{}{}
		}
	}

	owned, err := s.blobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	res := &SweepResult{DryRun: dryRun, Candidates: []string{}}
	for _, b := range owned {
		if _, ok := referenced[b.ID]; ok || !b.CreatedAt.Before(cutoff) {
			continue
		}
		res.CandidateCount++
		res.Candidates = append(res.Candidates, b.ID)
		if dryRun {
			continue
		}
		if err := s.blobs.Delete(ctx, b.ID, ownerID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				continue
			}
			res.FailedCount++
			s.logger.Warnw("sweep: failed to delete orphaned blob", "blob_id", b.ID, "owner_id", ownerID, "error", err)
			continue
		}
		res.DeletedCount++
		res.ReclaimedBytes += b.Length
	}

	s.metrics.RecordSweep(res.DeletedCount, res.FailedCount)
	s.logger.Infow("sweep finished", "owner_id", ownerID, "candidates", res.CandidateCount,
		"deleted", res.DeletedCount, "failed", res.FailedCount, "dry_run", dryRun)
	return res, nil
}
