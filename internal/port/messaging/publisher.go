package messaging

import (
	"context"

	"github.com/immofind/ads-service/internal/entity"
)

// EventPublisher fans view events out to downstream analytics consumers.
type EventPublisher interface {
	PublishAdViewed(ctx context.Context, event *entity.ViewEvent) error
}
