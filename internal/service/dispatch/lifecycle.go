package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dispatch/internal/entities"
)

// Статусы, из которых задание может двигаться дальше по маршруту.
var (
	pickupFrom    = []entities.JobStatus{entities.JobAssigned}
	inTransitFrom = []entities.JobStatus{entities.JobAssigned, entities.JobPickedUp}
	deliveredFrom = []entities.JobStatus{entities.JobAssigned, entities.JobPickedUp, entities.JobInTransit}
	cancelledFrom = []entities.JobStatus{
		entities.JobPending, entities.JobBroadcasting, entities.JobAssigned,
		entities.JobPickedUp, entities.JobInTransit,
	}
	failedFrom = []entities.JobStatus{
		entities.JobAssigned, entities.JobPickedUp, entities.JobInTransit,
	}
)

func (d *Dispatch) MarkPickedUp(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error) {
	return d.progress(ctx, jobID, pickupFrom, entities.JobPickedUp)
}

func (d *Dispatch) MarkInTransit(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error) {
	return d.progress(ctx, jobID, inTransitFrom, entities.JobInTransit)
}

// MarkDelivered закрывает задание успешной доставкой. Оценка клиента
// опциональна и сохраняется до пересчёта рейтинга.
func (d *Dispatch) MarkDelivered(ctx context.Context, jobID uuid.UUID, customerRating *float64) (*entities.DeliveryJob, error) {
	if customerRating != nil && (*customerRating < 1 || *customerRating > 5) {
		return nil, ErrMissingRequiredFields
	}

	storeRating := func(ctx context.Context) error {
		if customerRating == nil {
			return nil
		}
		if err := d.jobs.SetCustomerRating(ctx, jobID, *customerRating); err != nil {
			return fmt.Errorf("store customer rating: %w", err)
		}
		return nil
	}
	return d.close(ctx, jobID, deliveredFrom, entities.JobDelivered, entities.CourierCounters{Completed: 1}, storeRating)
}

func (d *Dispatch) MarkCancelled(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error) {
	return d.close(ctx, jobID, cancelledFrom, entities.JobCancelled, entities.CourierCounters{Cancelled: 1}, nil)
}

func (d *Dispatch) MarkFailed(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error) {
	return d.close(ctx, jobID, failedFrom, entities.JobFailed, entities.CourierCounters{Failed: 1}, nil)
}

func (d *Dispatch) progress(ctx context.Context, jobID uuid.UUID, from []entities.JobStatus, to entities.JobStatus) (*entities.DeliveryJob, error) {
	if !isValidJobID(jobID) {
		return nil, ErrInvalidJobID
	}

	updated, err := d.jobs.SetStatus(ctx, jobID, from, to)
	if err != nil {
		return nil, fmt.Errorf("set status %s: %w", to, err)
	}
	if updated == nil {
		return d.classifyStatusRejection(ctx, jobID, to)
	}
	return updated, nil
}

// close — терминальный переход: статус, счётчики курьера и afterClose
// пишутся в одной транзакции, триггер пересчёта рейтинга срабатывает
// уже после коммита — он видит все данные закрытия.
func (d *Dispatch) close(
	ctx context.Context,
	jobID uuid.UUID,
	from []entities.JobStatus,
	to entities.JobStatus,
	counters entities.CourierCounters,
	afterClose func(ctx context.Context) error,
) (*entities.DeliveryJob, error) {
	if !isValidJobID(jobID) {
		return nil, ErrInvalidJobID
	}

	var (
		closed     *entities.DeliveryJob
		transitted bool
	)
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		updated, err := d.jobs.SetStatus(ctx, jobID, from, to)
		if err != nil {
			return fmt.Errorf("set status %s: %w", to, err)
		}
		if updated == nil {
			// Повторное закрытие уже закрытого задания — no-op.
			closed, err = d.classifyStatusRejection(ctx, jobID, to)
			return err
		}
		closed = updated
		transitted = true

		if updated.AssignedTo != nil {
			if err := d.directory.ApplyCounters(ctx, *updated.AssignedTo, counters); err != nil {
				return fmt.Errorf("apply close counters: %w", err)
			}
		}
		if afterClose != nil {
			return afterClose(ctx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if transitted && closed.AssignedTo != nil {
		d.rating.JobClosed(ctx, *closed.AssignedTo)
	}
	return closed, nil
}

// classifyStatusRejection делает повторный переход идемпотентным: если
// задание уже в целевом статусе, возвращаем его без ошибки.
func (d *Dispatch) classifyStatusRejection(ctx context.Context, jobID uuid.UUID, to entities.JobStatus) (*entities.DeliveryJob, error) {
	job, err := d.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("re-read job after rejected transition: %w", err)
	}
	if job.Status == to {
		return job, nil
	}
	return nil, ErrInvalidState
}
