// Package dto содержит транспортные модели REST-слоя.
// Денежные суммы кодируются строками, чтобы не терять точность.
package dto

import (
	"time"

	"dispatch/internal/entities"
)

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type JobCreate struct {
	Code                string    `json:"code"`
	Fee                 string    `json:"fee"`
	PaymentMethod       string    `json:"payment_method"`
	Priority            string    `json:"priority,omitempty"`
	Pickup              *GeoPoint `json:"pickup,omitempty"`
	Drop                *GeoPoint `json:"drop,omitempty"`
	BroadcastRadiusKm   *float64  `json:"broadcast_radius_km,omitempty"`
	BroadcastTTLSeconds *int      `json:"broadcast_ttl_seconds,omitempty"`
	MaxAttempts         *int      `json:"max_attempts,omitempty"`
}

type JobCreateResponse struct {
	ID string `json:"id"`
}

type Job struct {
	ID                  string     `json:"id"`
	Code                string     `json:"code"`
	Fee                 string     `json:"fee"`
	PaymentMethod       string     `json:"payment_method"`
	Priority            string     `json:"priority"`
	Pickup              *GeoPoint  `json:"pickup,omitempty"`
	Drop                *GeoPoint  `json:"drop,omitempty"`
	BroadcastRadiusKm   float64    `json:"broadcast_radius_km"`
	BroadcastTTLSeconds int        `json:"broadcast_ttl_seconds"`
	BroadcastStatus     string     `json:"broadcast_status"`
	Status              string     `json:"status"`
	AssignedTo          *int64     `json:"assigned_to,omitempty"`
	AssignedAt          *time.Time `json:"assigned_at,omitempty"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
	BroadcastEndTime    *time.Time `json:"broadcast_end_time,omitempty"`
	BroadcastAttempts   int        `json:"broadcast_attempts"`
	MaxAttempts         int        `json:"max_attempts"`
	DriverEarning       *string    `json:"driver_earning,omitempty"`
	CompanyEarning      *string    `json:"company_earning,omitempty"`
	CustomerRating      *float64   `json:"customer_rating,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type BroadcastStartResponse struct {
	JobID            string    `json:"job_id"`
	Attempt          int       `json:"attempt"`
	NotifiedCouriers int       `json:"notified_couriers"`
	EndsAt           time.Time `json:"ends_at"`
}

type JobAccept struct {
	JobID     string `json:"job_id"`
	CourierID int64  `json:"courier_id"`
}

type ManualAssign struct {
	JobID     string `json:"job_id"`
	CourierID int64  `json:"courier_id"`
}

type RuleBand struct {
	MinFee            string  `json:"min_fee"`
	MaxFee            string  `json:"max_fee"`
	DriverFixed       *string `json:"driver_fixed,omitempty"`
	DriverPercentage  *string `json:"driver_percentage,omitempty"`
	CompanyFixed      *string `json:"company_fixed,omitempty"`
	CompanyPercentage *string `json:"company_percentage,omitempty"`
}

type RuleSetCreate struct {
	Bands []RuleBand `json:"bands"`
}

type RuleSet struct {
	ID        int64      `json:"id"`
	Version   int        `json:"version"`
	Active    bool       `json:"active"`
	Bands     []RuleBand `json:"bands"`
	CreatedAt time.Time  `json:"created_at"`
}

type CourierRating struct {
	CourierID         int64     `json:"courier_id"`
	AcceptanceScore   float64   `json:"acceptance_score"`
	CompletionScore   float64   `json:"completion_score"`
	ResponseTimeScore float64   `json:"response_time_score"`
	ReliabilityScore  float64   `json:"reliability_score"`
	SatisfactionScore float64   `json:"satisfaction_score"`
	Composite         float64   `json:"composite"`
	Stars             float64   `json:"stars"`
	ComputedAt        time.Time `json:"computed_at"`
}

func JobFromEntity(job *entities.DeliveryJob) Job {
	jobDTO := Job{
		ID:                  job.ID.String(),
		Code:                job.Code,
		Fee:                 job.Fee.String(),
		PaymentMethod:       job.PaymentMethod.String(),
		Priority:            job.Priority.String(),
		BroadcastRadiusKm:   job.BroadcastRadius,
		BroadcastTTLSeconds: int(job.BroadcastTTL.Seconds()),
		BroadcastStatus:     job.BroadcastStatus.String(),
		Status:              job.Status.String(),
		AssignedTo:          job.AssignedTo,
		AssignedAt:          job.AssignedAt,
		AcceptedAt:          job.AcceptedAt,
		BroadcastEndTime:    job.BroadcastEndTime,
		BroadcastAttempts:   job.BroadcastAttempts,
		MaxAttempts:         job.MaxAttempts,
		CustomerRating:      job.CustomerRating,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}

	if job.Pickup != nil {
		jobDTO.Pickup = &GeoPoint{Lat: job.Pickup.Lat, Lon: job.Pickup.Lon}
	}
	if job.Drop != nil {
		jobDTO.Drop = &GeoPoint{Lat: job.Drop.Lat, Lon: job.Drop.Lon}
	}
	if job.DriverEarning != nil {
		s := job.DriverEarning.String()
		jobDTO.DriverEarning = &s
	}
	if job.CompanyEarning != nil {
		s := job.CompanyEarning.String()
		jobDTO.CompanyEarning = &s
	}

	return jobDTO
}

func RuleSetFromEntity(ruleSet *entities.EarningsRuleSet) RuleSet {
	ruleSetDTO := RuleSet{
		ID:        ruleSet.ID,
		Version:   ruleSet.Version,
		Active:    ruleSet.Active,
		Bands:     make([]RuleBand, 0, len(ruleSet.Bands)),
		CreatedAt: ruleSet.CreatedAt,
	}

	for _, band := range ruleSet.Bands {
		bandDTO := RuleBand{
			MinFee: band.MinFee.String(),
			MaxFee: band.MaxFee.String(),
		}
		if band.DriverFixed != nil {
			s := band.DriverFixed.String()
			bandDTO.DriverFixed = &s
		}
		if band.DriverPercentage != nil {
			s := band.DriverPercentage.String()
			bandDTO.DriverPercentage = &s
		}
		if band.CompanyFixed != nil {
			s := band.CompanyFixed.String()
			bandDTO.CompanyFixed = &s
		}
		if band.CompanyPercentage != nil {
			s := band.CompanyPercentage.String()
			bandDTO.CompanyPercentage = &s
		}
		ruleSetDTO.Bands = append(ruleSetDTO.Bands, bandDTO)
	}

	return ruleSetDTO
}

func RatingFromEntity(rating *entities.CourierRating) CourierRating {
	return CourierRating{
		CourierID:         rating.CourierID,
		AcceptanceScore:   rating.AcceptanceScore,
		CompletionScore:   rating.CompletionScore,
		ResponseTimeScore: rating.ResponseTimeScore,
		ReliabilityScore:  rating.ReliabilityScore,
		SatisfactionScore: rating.SatisfactionScore,
		Composite:         rating.Composite,
		Stars:             rating.Stars,
		ComputedAt:        rating.ComputedAt,
	}
}
