package rating_recompute

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Service interface {
	RecomputeAll(ctx context.Context) (int, error)
}

type RatingRecompute struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewRatingRecompute(log logger.Logger, service Service, interval time.Duration) *RatingRecompute {
	return &RatingRecompute{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (r *RatingRecompute) TTL() time.Duration {
	return r.interval
}

func (r *RatingRecompute) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	recomputed, err := r.service.RecomputeAll(ctxWithTimeout)

	if recomputed > 0 {
		r.log.With(
			logger.NewField("couriers_recomputed", recomputed),
		).Info("rating recompute")
	}

	return err
}

func (r *RatingRecompute) Info() string {
	return "rating recompute"
}
