package trending

import "context"

// AdScore pairs an ad id with its accumulated view score.
type AdScore struct {
	AdID  string  `json:"adId"`
	Views float64 `json:"views"`
}

// Recorder keeps a rolling most-viewed ranking. Both operations are
// best-effort from the caller's point of view.
type Recorder interface {
	RecordView(ctx context.Context, adID string) error
	TopAds(ctx context.Context, limit int64) ([]AdScore, error)
}
