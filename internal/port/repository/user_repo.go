package repository

import (
	"context"

	"github.com/immofind/ads-service/internal/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// AddSeenAd records adID in the user's seen set. Atomic add-if-absent,
	// same semantics as AdRepository.AddSeenIP.
	AddSeenAd(ctx context.Context, userID, adID string) error
}
