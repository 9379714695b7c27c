package service

import (
	"GophMart/internal/model"
	"fmt"

	"github.com/google/uuid"
)

// authorize - единая проверка владения для items и blobs.
func authorize(requesterID int64, res model.Ownable) error {
	if res.OwnerID() != requesterID {
		return fmt.Errorf("%w: user %d is not the owner", model.ErrForbidden, requesterID)
	}
	return nil
}

// parseID проверяет формат идентификатора item/blob и возвращает каноническую запись.
func parseID(kind, id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: malformed %s id %q", model.ErrInvalidInput, kind, id)
	}
	return u.String(), nil
}

// normalizeIDs валидирует и дедуплицирует набор идентификаторов, сохраняя порядок первого вхождения.
// Невалидный id отклоняет весь набор.
func normalizeIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id, err := parseID("image", raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
