//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dispatch/internal/entities"
)

type JobStore interface {
	Create(ctx context.Context, jobModify entities.JobModify) (*entities.DeliveryJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.DeliveryJob, error)

	// Условные переходы: возвращают nil, nil если предусловие уже не
	// выполняется на момент записи (проигранная гонка или устаревший переход).
	StartBroadcast(ctx context.Context, id uuid.UUID, from []entities.BroadcastStatus, radiusKm float64, offeredAt, endsAt time.Time) (*entities.DeliveryJob, error)
	Accept(ctx context.Context, id uuid.UUID, courierID int64, split entities.EarningsSplit, now time.Time) (*entities.DeliveryJob, error)
	MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (*entities.DeliveryJob, error)
	MarkManualPending(ctx context.Context, id uuid.UUID) (*entities.DeliveryJob, error)
	ManualAssign(ctx context.Context, id uuid.UUID, courierID int64, split entities.EarningsSplit, now time.Time) (*entities.DeliveryJob, error)
	SetStatus(ctx context.Context, id uuid.UUID, from []entities.JobStatus, to entities.JobStatus) (*entities.DeliveryJob, error)
	SetCustomerRating(ctx context.Context, id uuid.UUID, rating float64) error

	ListExpiredBroadcasting(ctx context.Context, now time.Time) ([]entities.DeliveryJob, error)
}

type Directory interface {
	FindEligible(ctx context.Context, filter entities.EligibilityFilter) ([]entities.Courier, error)
	GetByID(ctx context.Context, id int64) (*entities.Courier, error)
	ApplyCounters(ctx context.Context, courierID int64, counters entities.CourierCounters) error
}

// Notifier — best-effort канал уведомлений: сбои доставки по отдельным
// получателям логируются внутри адаптера и не возвращаются вызывающему.
type Notifier interface {
	Publish(ctx context.Context, event entities.Event)
}

type EarningsCalculator interface {
	ComputeSplit(ctx context.Context, fee decimal.Decimal) (*entities.EarningsSplit, error)
}

// RadiusPolicy задаёт расширение радиуса при повторной трансляции.
// Возвращаемое значение не убывает и ограничено сверху.
type RadiusPolicy interface {
	Next(currentKm float64) float64
}

// RatingTrigger вызывается после закрытия задания; реализация зависит от
// настроенной политики пересчёта (on_completion или batch).
type RatingTrigger interface {
	JobClosed(ctx context.Context, courierID int64)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
