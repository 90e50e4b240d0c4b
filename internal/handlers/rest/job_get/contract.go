//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=job_get_test
package job_get

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
	GetJob(ctx context.Context, jobID uuid.UUID) (*entities.DeliveryJob, error)
}
