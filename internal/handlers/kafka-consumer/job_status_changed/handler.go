package job_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"dispatch/internal/entities"
	dispatchservice "dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

// statusChangedEvent приходит от курьерского приложения через kafka.
type statusChangedEvent struct {
	JobID          uuid.UUID `json:"job_id"`
	Status         string    `json:"status"`
	CustomerRating *float64  `json:"customer_rating,omitempty"`
}

type Handler struct {
	statusFactory            HandlerFactory
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, statusFactory HandlerFactory, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		statusFactory:            statusFactory,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("job.status.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("job.status.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("job.status.changed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("job", event.JobID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("job.status.changed processing")

	executeFn, err := h.statusFactory.GetHandler(entities.JobStatus(event.Status))
	if err != nil {
		// необрабатываемые статусы просто пропускаем
		if errors.Is(err, dispatchservice.ErrUndefinedStatus) {
			msgLog.Warn("job.status.changed handler unknown status for job")
			sess.MarkMessage(message, "")
			return false
		}

		msgLog.With(
			logger.NewField("error", err),
		).Error("job.status.changed handler failed to resolve status handler")
		sess.MarkMessage(message, "")
		return false
	}

	if err := executeFn(ctx, event.JobID, event.CustomerRating); err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("job.status.changed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, dispatchservice.ErrJobNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("job.status.changed handler job not found")

		case errors.Is(err, dispatchservice.ErrInvalidState):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("job.status.changed handler invalid transition for job")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("job.status.changed handler failed to process job")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("job.status.changed: processed")

	sess.MarkMessage(message, "")
	return false
}
