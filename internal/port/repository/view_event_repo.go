package repository

import (
	"context"

	"github.com/immofind/ads-service/internal/entity"
)

// ViewEventRepository is insert-only; events are never updated or deleted by
// this service.
type ViewEventRepository interface {
	Create(ctx context.Context, event *entity.ViewEvent) (string, error)
}
