package status_handle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"dispatch/internal/entities"
	"dispatch/internal/service/dispatch"
)

// ExecuteFn применяет один статусный переход к заданию.
type ExecuteFn func(ctx context.Context, jobID uuid.UUID, customerRating *float64) error

type Lifecycle interface {
	MarkPickedUp(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error)
	MarkInTransit(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error)
	MarkDelivered(ctx context.Context, jobID uuid.UUID, customerRating *float64) (*entities.DeliveryJob, error)
	MarkCancelled(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error)
	MarkFailed(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error)
}

type StatusHandlerFactory struct {
	dispatchService Lifecycle
}

func NewStatusHandlerFactory(dispatchService Lifecycle) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		dispatchService: dispatchService,
	}
}

func (f *StatusHandlerFactory) GetHandler(status entities.JobStatus) (ExecuteFn, error) {
	switch status {
	case entities.JobPickedUp:
		return f.pickedUpHandler, nil
	case entities.JobInTransit:
		return f.inTransitHandler, nil
	case entities.JobDelivered:
		return f.deliveredHandler, nil
	case entities.JobCancelled:
		return f.cancelledHandler, nil
	case entities.JobFailed:
		return f.failedHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", dispatch.ErrUndefinedStatus, status)
	}
}

func (f *StatusHandlerFactory) pickedUpHandler(ctx context.Context, jobID uuid.UUID, _ *float64) error {
	_, err := f.dispatchService.MarkPickedUp(ctx, jobID)
	if err != nil {
		return fmt.Errorf("mark job %s picked up: %w", jobID, err)
	}
	return nil
}

func (f *StatusHandlerFactory) inTransitHandler(ctx context.Context, jobID uuid.UUID, _ *float64) error {
	_, err := f.dispatchService.MarkInTransit(ctx, jobID)
	if err != nil {
		return fmt.Errorf("mark job %s in transit: %w", jobID, err)
	}
	return nil
}

func (f *StatusHandlerFactory) deliveredHandler(ctx context.Context, jobID uuid.UUID, customerRating *float64) error {
	_, err := f.dispatchService.MarkDelivered(ctx, jobID, customerRating)
	if err != nil {
		return fmt.Errorf("mark job %s delivered: %w", jobID, err)
	}
	return nil
}

func (f *StatusHandlerFactory) cancelledHandler(ctx context.Context, jobID uuid.UUID, _ *float64) error {
	_, err := f.dispatchService.MarkCancelled(ctx, jobID)
	if err != nil {
		return fmt.Errorf("mark job %s cancelled: %w", jobID, err)
	}
	return nil
}

func (f *StatusHandlerFactory) failedHandler(ctx context.Context, jobID uuid.UUID, _ *float64) error {
	_, err := f.dispatchService.MarkFailed(ctx, jobID)
	if err != nil {
		return fmt.Errorf("mark job %s failed: %w", jobID, err)
	}
	return nil
}
