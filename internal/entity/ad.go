package entity

import "time"

// Publication states an ad moves through before it is visible in the catalog.
const (
	PublishedStateDraft     = "draft"
	PublishedStatePending   = "pending"
	PublishedStatePublished = "published"
)

type Ad struct {
	ID           string
	Title        string
	Address      string
	PropertyType string
	Price        float64
	Surface      float64
	Rooms        int
	Published    string
	Enabled      bool
	// Seen holds one entry per distinct viewer IP; its length is the
	// deduplicated view count shown on listing cards.
	Seen      []string
	CreatedBy string
	Owner     *OwnerProfile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsVisible reports whether the ad may appear in browse/search results.
func (a *Ad) IsVisible() bool {
	return a.Published == PublishedStatePublished && a.Enabled
}
