package broadcast_sweep

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Service interface {
	ProcessExpiredBroadcasts(ctx context.Context) (int, error)
}

type BroadcastSweep struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewBroadcastSweep(log logger.Logger, service Service, interval time.Duration) *BroadcastSweep {
	return &BroadcastSweep{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (b *BroadcastSweep) TTL() time.Duration {
	return b.interval
}

func (b *BroadcastSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, b.interval)
	defer cancel()

	processed, err := b.service.ProcessExpiredBroadcasts(ctxWithTimeout)

	if processed > 0 {
		b.log.With(
			logger.NewField("expired_broadcasts", processed),
		).Info("broadcast sweep")
	}

	return err
}

func (b *BroadcastSweep) Info() string {
	return "broadcast sweep"
}
