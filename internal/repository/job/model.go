package job

import (
	"time"

	"github.com/google/uuid"
)

// JobDB — строка таблицы jobs. Денежные поля читаются текстом и
// конвертируются в decimal на границе репозитория.
type JobDB struct {
	ID   uuid.UUID
	Code string

	Fee           string
	PaymentMethod string
	Priority      string

	PickupLat *float64
	PickupLon *float64
	DropLat   *float64
	DropLon   *float64

	BroadcastRadiusKm   float64
	BroadcastTTLSeconds int64

	BroadcastStatus   string
	Status            string
	AssignedTo        *int64
	AssignedAt        *time.Time
	AcceptedAt        *time.Time
	BroadcastEndTime  *time.Time
	BroadcastAttempts int
	MaxAttempts       int

	DriverEarning  *string
	CompanyEarning *string

	CustomerRating *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
