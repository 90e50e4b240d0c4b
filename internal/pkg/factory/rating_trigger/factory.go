package rating_trigger

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Policy определяет, когда пересчитывается рейтинг курьера.
type Policy string

const (
	// OnCompletion — синхронный пересчёт после каждого закрытого задания.
	OnCompletion Policy = "on_completion"
	// Batch — пересчёт только периодической фоновой задачей.
	Batch Policy = "batch"
)

func (p Policy) IsValid() bool {
	return p == OnCompletion || p == Batch
}

type Recomputer interface {
	RecomputeCourier(ctx context.Context, courierID int64) (*entities.CourierRating, error)
}

type Trigger struct {
	policy  Policy
	service Recomputer
	log     logger.Logger
}

func New(log logger.Logger, policy Policy, service Recomputer) *Trigger {
	return &Trigger{
		policy:  policy,
		service: service,
		log:     log,
	}
}

// JobClosed вызывается dispatch-сервисом после терминального перехода.
// Ошибка пересчёта не влияет на уже зафиксированный переход.
func (t *Trigger) JobClosed(ctx context.Context, courierID int64) {
	if t.policy != OnCompletion {
		return
	}

	if _, err := t.service.RecomputeCourier(ctx, courierID); err != nil {
		t.log.With(
			logger.NewField("courier", courierID),
			logger.NewField("error", err),
		).Error("post-completion rating recompute failed")
	}
}
