package job

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/entities"
)

func ToDomain(j *JobDB) (*entities.DeliveryJob, error) {
	if j == nil {
		return nil, nil
	}

	fee, err := decimal.NewFromString(j.Fee)
	if err != nil {
		return nil, fmt.Errorf("parse fee %q: %w", j.Fee, err)
	}

	driverEarning, err := parseMoney(j.DriverEarning)
	if err != nil {
		return nil, fmt.Errorf("parse driver earning: %w", err)
	}
	companyEarning, err := parseMoney(j.CompanyEarning)
	if err != nil {
		return nil, fmt.Errorf("parse company earning: %w", err)
	}

	return &entities.DeliveryJob{
		ID:                j.ID,
		Code:              j.Code,
		Fee:               fee,
		PaymentMethod:     entities.PaymentMethod(j.PaymentMethod),
		Priority:          entities.JobPriority(j.Priority),
		Pickup:            toPoint(j.PickupLat, j.PickupLon),
		Drop:              toPoint(j.DropLat, j.DropLon),
		BroadcastRadius:   j.BroadcastRadiusKm,
		BroadcastTTL:      time.Duration(j.BroadcastTTLSeconds) * time.Second,
		BroadcastStatus:   entities.BroadcastStatus(j.BroadcastStatus),
		Status:            entities.JobStatus(j.Status),
		AssignedTo:        j.AssignedTo,
		AssignedAt:        j.AssignedAt,
		AcceptedAt:        j.AcceptedAt,
		BroadcastEndTime:  j.BroadcastEndTime,
		BroadcastAttempts: j.BroadcastAttempts,
		MaxAttempts:       j.MaxAttempts,
		DriverEarning:     driverEarning,
		CompanyEarning:    companyEarning,
		CustomerRating:    j.CustomerRating,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}, nil
}

func parseMoney(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	v, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func toPoint(lat, lon *float64) *entities.GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &entities.GeoPoint{Lat: *lat, Lon: *lon}
}

func fromPoint(p *entities.GeoPoint) (lat, lon *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Lat, &p.Lon
}

func statusStrings(statuses []entities.JobStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}

func broadcastStatusStrings(statuses []entities.BroadcastStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
