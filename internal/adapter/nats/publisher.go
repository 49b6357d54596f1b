package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/immofind/ads-service/internal/config"
	"github.com/immofind/ads-service/internal/entity"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const AdViewedSubject = "ads.viewed"

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

type adViewedPayload struct {
	EventID  string    `json:"event_id"`
	AdID     string    `json:"ad_id"`
	IP       string    `json:"ip"`
	ViewedAt time.Time `json:"viewed_at"`
}

// asyncErrorHandler logs async NATS errors. Connection-level errors arrive
// with a nil subscription.
func asyncErrorHandler(logger *zap.Logger) nats.ErrHandler {
	return func(nc *nats.Conn, sub *nats.Subscription, err error) {
		subject := ""
		if sub != nil {
			subject = sub.Subject
		}
		logger.Error("NATS error", zap.String("subject", subject), zap.Error(err))
	}
}

func NewNATSPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ErrorHandler(asyncErrorHandler(logger)),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) PublishAdViewed(ctx context.Context, event *entity.ViewEvent) error {
	payload := adViewedPayload{
		EventID:  uuid.NewString(),
		AdID:     event.AdID,
		IP:       event.IP,
		ViewedAt: event.CreatedAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal view event for NATS publishing",
			zap.Error(err),
			zap.String("ad_id", event.AdID),
			zap.String("subject", AdViewedSubject),
		)
		return fmt.Errorf("failed to marshal view event for %s: %w", AdViewedSubject, err)
	}

	if err := p.nc.Publish(AdViewedSubject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", AdViewedSubject),
			zap.Error(err),
			zap.String("ad_id", event.AdID),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", AdViewedSubject, err)
	}

	p.logger.Debug("Published NATS message",
		zap.String("subject", AdViewedSubject),
		zap.String("ad_id", event.AdID),
	)
	return nil
}

func (p *Publisher) Close() {
	p.nc.Close()
}
