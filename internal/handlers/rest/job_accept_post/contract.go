//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=job_accept_post_test
package job_accept_post

import (
	"context"

	"github.com/google/uuid"
	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Accept(ctx context.Context, jobID uuid.UUID, courierID int64) (*entities.DeliveryJob, error)
}
