package repository

import (
	"context"

	"github.com/immofind/ads-service/internal/entity"
)

// SearchFilter carries the optional search parameters accepted by the public
// search endpoint. Nil pointers mean "no constraint"; min/max bounds on the
// same field intersect.
type SearchFilter struct {
	Title        string
	Location     string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	MinSurface   *float64
	MaxSurface   *float64
	Rooms        *int
}

type AdRepository interface {
	// FindPage returns up to limit published+enabled ads, newest first,
	// skipping offset records. An offset past the end yields an empty slice.
	FindPage(ctx context.Context, offset, limit int64) ([]*entity.Ad, error)

	// Search returns up to limit published+enabled ads matching the filter,
	// newest first.
	Search(ctx context.Context, filter SearchFilter, limit int64) ([]*entity.Ad, error)

	// CountVisible counts ads matching the baseline published+enabled
	// predicate.
	CountVisible(ctx context.Context) (int64, error)

	GetByID(ctx context.Context, id string) (*entity.Ad, error)

	// AddSeenIP records ip in the ad's seen set. The write is atomic
	// add-if-absent; recording the same ip twice is a no-op.
	AddSeenIP(ctx context.Context, adID, ip string) error
}
