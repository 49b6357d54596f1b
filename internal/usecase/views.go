package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/immofind/ads-service/internal/entity"
	"github.com/immofind/ads-service/internal/port/messaging"
	"github.com/immofind/ads-service/internal/port/repository"
	"github.com/immofind/ads-service/internal/port/trending"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var ErrAdNotFound = errors.New("advertisement not found")

// Viewer carries the identity signals attributed to one retrieval: the
// authenticated user id when a valid credential was presented, and the
// request IP. Either or both may be empty.
type Viewer struct {
	UserID string
	IP     string
}

type ViewsUseCase struct {
	adRepo    repository.AdRepository
	userRepo  repository.UserRepository
	eventRepo repository.ViewEventRepository
	trending  trending.Recorder
	publisher messaging.EventPublisher
	logger    *zap.Logger
	tracer    trace.Tracer
}

func NewViewsUseCase(
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
	eventRepo repository.ViewEventRepository,
	trendingRec trending.Recorder,
	publisher messaging.EventPublisher,
	logger *zap.Logger,
) *ViewsUseCase {
	return &ViewsUseCase{
		adRepo:    adRepo,
		userRepo:  userRepo,
		eventRepo: eventRepo,
		trending:  trendingRec,
		publisher: publisher,
		logger:    logger,
		tracer:    otel.Tracer("ads-service/usecase"),
	}
}

// GetAd fetches one ad and accounts the view. The seen-set updates, the
// event insert and the fan-out are independent best-effort side effects of
// a successful read; only an unknown id or the lookup/profile store failing
// surface as errors.
func (uc *ViewsUseCase) GetAd(ctx context.Context, adID string, viewer Viewer) (*entity.Ad, error) {
	ctx, span := uc.tracer.Start(ctx, "ViewsUseCase.GetAd",
		trace.WithAttributes(attribute.String("ad_id", adID)))
	defer span.End()

	ad, err := uc.adRepo.GetByID(ctx, adID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to fetch ad %s: %w", adID, err)
	}

	if viewer.UserID != "" {
		if err := uc.userRepo.AddSeenAd(ctx, viewer.UserID, adID); err != nil {
			uc.logger.Warn("failed to record ad in user history",
				zap.String("user_id", viewer.UserID),
				zap.String("ad_id", adID),
				zap.Error(err))
		}
	}

	if viewer.IP != "" {
		if err := uc.adRepo.AddSeenIP(ctx, adID, viewer.IP); err != nil {
			uc.logger.Warn("failed to record viewer ip on ad",
				zap.String("ad_id", adID),
				zap.Error(err))
		} else if !containsString(ad.Seen, viewer.IP) {
			// Keep the returned snapshot consistent with the write.
			ad.Seen = append(ad.Seen, viewer.IP)
		}
	}

	event := &entity.ViewEvent{
		AdID:      adID,
		IP:        viewer.IP,
		CreatedAt: time.Now().UTC(),
	}
	if id, err := uc.eventRepo.Create(ctx, event); err != nil {
		uc.logger.Warn("failed to persist view event",
			zap.String("ad_id", adID),
			zap.Error(err))
	} else {
		event.ID = id
	}

	if uc.trending != nil {
		if err := uc.trending.RecordView(ctx, adID); err != nil {
			uc.logger.Warn("failed to bump trending score",
				zap.String("ad_id", adID),
				zap.Error(err))
		}
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishAdViewed(ctx, event); err != nil {
			uc.logger.Warn("failed to publish view event",
				zap.String("ad_id", adID),
				zap.Error(err))
		}
	}

	uc.attachOwner(ctx, ad)
	return ad, nil
}

// attachOwner resolves the creator's public profile. Display data only, so
// a missing or unreadable owner is logged and the ad returned without it.
func (uc *ViewsUseCase) attachOwner(ctx context.Context, ad *entity.Ad) {
	if ad.CreatedBy == "" {
		return
	}
	owner, err := uc.userRepo.GetByID(ctx, ad.CreatedBy)
	if err != nil {
		uc.logger.Warn("failed to load ad owner profile",
			zap.String("ad_id", ad.ID),
			zap.String("owner_id", ad.CreatedBy),
			zap.Error(err))
		return
	}
	ad.Owner = owner.PublicProfile()
}

// History returns the ads the user has viewed, most recent first. Ads that
// were deleted or unpublished since are skipped.
func (uc *ViewsUseCase) History(ctx context.Context, userID string) ([]*entity.Ad, error) {
	ctx, span := uc.tracer.Start(ctx, "ViewsUseCase.History",
		trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	ads := make([]*entity.Ad, 0, len(user.Seen))
	for i := len(user.Seen) - 1; i >= 0; i-- {
		ad, err := uc.adRepo.GetByID(ctx, user.Seen[i])
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to fetch ad %s from history: %w", user.Seen[i], err)
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

// TrendingAds returns the current most-viewed ranking.
func (uc *ViewsUseCase) TrendingAds(ctx context.Context, limit int64) ([]trending.AdScore, error) {
	ctx, span := uc.tracer.Start(ctx, "ViewsUseCase.TrendingAds")
	defer span.End()

	if uc.trending == nil {
		return []trending.AdScore{}, nil
	}
	scores, err := uc.trending.TopAds(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending ads: %w", err)
	}
	return scores, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
