package notifier

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Envelope — формат сообщения push-канала.
type Envelope struct {
	EventID    string         `json:"event_id"`
	Type       string         `json:"type"`
	Target     string         `json:"target"`
	CourierID  *int64         `json:"courier_id,omitempty"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Notifier веерно рассылает события в Kafka: по сообщению на каждого
// курьера-получателя плюс сводное сообщение для администраторов.
// Контракт at-most-once: сбой по получателю логируется и считается,
// но никогда не возвращается вызывающему и не прерывает рассылку.
type Notifier struct {
	producer    Producer
	driverTopic string
	adminTopic  string
	log         logger.Logger
}

func New(log logger.Logger, producer Producer, driverTopic, adminTopic string) *Notifier {
	return &Notifier{
		producer:    producer,
		driverTopic: driverTopic,
		adminTopic:  adminTopic,
		log:         log,
	}
}

func (n *Notifier) Publish(ctx context.Context, event entities.Event) {
	_ = ctx

	switch event.Target {
	case entities.TargetDriver, entities.TargetBroadcastSet:
		n.fanOut(event)
	case entities.TargetAdmin:
		n.sendOne(n.adminTopic, "admin", nil, event)
	default:
		n.log.With(
			logger.NewField("target", string(event.Target)),
			logger.NewField("type", string(event.Type)),
		).Warn("unknown event target, dropping")
	}
}

func (n *Notifier) fanOut(event entities.Event) {
	for _, courierID := range event.CourierIDs {
		id := courierID
		n.sendOne(n.driverTopic, strconv.FormatInt(id, 10), &id, event)
	}
}

func (n *Notifier) sendOne(topic, key string, courierID *int64, event entities.Event) {
	envelope := Envelope{
		EventID:    uuid.NewString(),
		Type:       string(event.Type),
		Target:     string(event.Target),
		CourierID:  courierID,
		Payload:    event.Payload,
		OccurredAt: event.OccurredAt,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		n.log.With(
			logger.NewField("type", envelope.Type),
			logger.NewField("error", err),
		).Error("marshal notification envelope")
		EventsDroppedTotal.WithLabelValues(envelope.Type, envelope.Target).Inc()
		return
	}

	if err := n.producer.Send(topic, key, value); err != nil {
		n.log.With(
			logger.NewField("type", envelope.Type),
			logger.NewField("target", envelope.Target),
			logger.NewField("key", key),
			logger.NewField("error", err),
		).Warn("notification publish failed, dropping recipient")
		EventsDroppedTotal.WithLabelValues(envelope.Type, envelope.Target).Inc()
		return
	}

	EventsPublishedTotal.WithLabelValues(envelope.Type, envelope.Target).Inc()
}
