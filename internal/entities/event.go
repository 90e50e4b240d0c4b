package entities

import "time"

// EventTarget определяет получателей уведомления.
type EventTarget string

const (
	TargetDriver       EventTarget = "driver"
	TargetAdmin        EventTarget = "admin"
	TargetBroadcastSet EventTarget = "broadcast_set"
)

type EventType string

const (
	EventJobBroadcast     EventType = "job.broadcast"
	EventJobAccepted      EventType = "job.accepted"
	EventJobTakenByOther  EventType = "job.taken_by_other"
	EventBroadcastExpired EventType = "job.broadcast_expired"
	EventManualRequired   EventType = "job.manual_assignment_required"
	EventManualAssigned   EventType = "job.manual_assigned"
)

// Event — уведомление для push-канала. Доставка best-effort:
// сбой по отдельному получателю логируется и не прерывает рассылку.
type Event struct {
	Type       EventType
	Target     EventTarget
	CourierIDs []int64 // получатели для driver/broadcast_set
	Payload    map[string]any
	OccurredAt time.Time
}
