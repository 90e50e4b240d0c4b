package job_status_changed

import (
	"dispatch/internal/entities"
	"dispatch/internal/pkg/factory/status_handle"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type HandlerFactory interface {
	GetHandler(status entities.JobStatus) (status_handle.ExecuteFn, error)
}
