package entity

import "time"

// ViewEvent is a raw analytics record written on every successful single-ad
// retrieval. It is never deduplicated, updated or deleted.
type ViewEvent struct {
	ID        string
	AdID      string
	IP        string
	CreatedAt time.Time
}
