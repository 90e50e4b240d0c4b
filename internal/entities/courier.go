package entities

import (
	"time"
)

type Courier struct {
	ID        int64
	Name      string
	Phone     string
	Active    bool
	Online    bool
	Suspended bool
	Location  *GeoPoint

	TotalAssigned  int64
	TotalAccepted  int64
	TotalCompleted int64
	TotalCancelled int64
	TotalFailed    int64

	Rating float64 // [1.0, 5.0], пишется только rating-сервисом

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CourierModify struct {
	ID        *int64
	Name      *string
	Phone     *string
	Active    *bool
	Online    *bool
	Suspended *bool
	Location  *GeoPoint
}

// CourierCounters — инкременты агрегатных счётчиков профиля.
// Ненулевые поля прибавляются к текущим значениям атомарно.
type CourierCounters struct {
	Assigned  int64
	Accepted  int64
	Completed int64
	Cancelled int64
	Failed    int64
}

// EligibilityFilter описывает выборку курьеров для трансляции.
// Радиус применяется только при заданном центре.
type EligibilityFilter struct {
	Active   bool
	Online   bool
	Center   *GeoPoint
	RadiusKm float64
}

// CourierRating — развёрнутый результат пересчёта рейтинга.
type CourierRating struct {
	CourierID         int64
	AcceptanceScore   float64
	CompletionScore   float64
	ResponseTimeScore float64
	ReliabilityScore  float64
	SatisfactionScore float64
	Composite         float64
	Stars             float64
	ComputedAt        time.Time
}
