package courier

import "time"

type CourierDB struct {
	ID        int64
	Name      string
	Phone     string
	Active    bool
	Online    bool
	Suspended bool
	Lat       *float64
	Lon       *float64

	TotalAssigned  int64
	TotalAccepted  int64
	TotalCompleted int64
	TotalCancelled int64
	TotalFailed    int64

	Rating float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
