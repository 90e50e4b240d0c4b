package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryJob — единица работы диспетчеризации. Все переходы статусов
// выполняются только через dispatch-сервис условными обновлениями.
type DeliveryJob struct {
	ID   uuid.UUID
	Code string

	Fee           decimal.Decimal
	PaymentMethod PaymentMethod
	Priority      JobPriority

	Pickup          *GeoPoint
	Drop            *GeoPoint
	BroadcastRadius float64 // km
	BroadcastTTL    time.Duration

	BroadcastStatus   BroadcastStatus
	Status            JobStatus
	AssignedTo        *int64
	AssignedAt        *time.Time // начало текущей попытки трансляции (время оффера)
	AcceptedAt        *time.Time
	BroadcastEndTime  *time.Time
	BroadcastAttempts int
	MaxAttempts       int

	DriverEarning  *decimal.Decimal
	CompanyEarning *decimal.Decimal

	CustomerRating *float64 // оценка клиента 1..5, ставится после доставки

	CreatedAt time.Time
	UpdatedAt time.Time
}

type GeoPoint struct {
	Lat float64
	Lon float64
}

type BroadcastStatus string

const (
	BroadcastNotStarted BroadcastStatus = "not_started"
	Broadcasting        BroadcastStatus = "broadcasting"
	BroadcastAccepted   BroadcastStatus = "accepted"
	BroadcastExpired    BroadcastStatus = "expired"
	BroadcastManual     BroadcastStatus = "manual_assignment"
)

func (s BroadcastStatus) String() string {
	return string(s)
}

type JobStatus string

const (
	JobPending      JobStatus = "pending"
	JobBroadcasting JobStatus = "broadcasting"
	JobAssigned     JobStatus = "assigned"
	JobPickedUp     JobStatus = "picked_up"
	JobInTransit    JobStatus = "in_transit"
	JobDelivered    JobStatus = "delivered"
	JobCancelled    JobStatus = "cancelled"
	JobFailed       JobStatus = "failed"
)

func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal сообщает, закрыт ли жизненный цикл задания.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobDelivered, JobCancelled, JobFailed:
		return true
	default:
		return false
	}
}

type JobPriority string

const (
	PriorityLow    JobPriority = "low"
	PriorityNormal JobPriority = "normal"
	PriorityHigh   JobPriority = "high"
	PriorityUrgent JobPriority = "urgent"
)

const DefaultPriority = PriorityNormal

func (p JobPriority) String() string {
	return string(p)
}

func (p JobPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentDeferred PaymentMethod = "deferred"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// JobModify — частичное изменение задания, nil-поля не трогаются.
type JobModify struct {
	Code            *string
	Fee             *decimal.Decimal
	PaymentMethod   *PaymentMethod
	Priority        *JobPriority
	Pickup          *GeoPoint
	Drop            *GeoPoint
	BroadcastRadius *float64
	BroadcastTTL    *time.Duration
	MaxAttempts     *int
}

// EarningsSplit — результат разбиения стоимости доставки между
// курьером и платформой. Вычисляется один раз при назначении.
type EarningsSplit struct {
	DriverEarning  decimal.Decimal
	CompanyEarning decimal.Decimal
}

// BroadcastResult возвращается после запуска трансляции.
type BroadcastResult struct {
	Job             *DeliveryJob
	EligibleCourier []int64
	Attempt         int
	EndsAt          time.Time
}
