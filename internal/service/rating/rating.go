package rating

import (
	"context"
	"fmt"
	"math"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Веса составного балла. Сумма равна 1.
const (
	weightAcceptance   = 0.35
	weightCompletion   = 0.30
	weightResponseTime = 0.20
	weightReliability  = 0.10
	weightSatisfaction = 0.05
)

const (
	defaultStars = 5.0
	minStars     = 1.0
	maxStars     = 5.0
)

type Rating struct {
	jobs     JobHistory
	couriers CourierRepository
	log      logger.Logger
}

func New(log logger.Logger, jobs JobHistory, couriers CourierRepository) *Rating {
	return &Rating{
		jobs:     jobs,
		couriers: couriers,
		log:      log,
	}
}

// RecomputeCourier пересчитывает рейтинг по всей истории заданий курьера
// и записывает итог в профиль. Это не чистый запрос: вычисление —
// единственный писатель поля rating.
func (r *Rating) RecomputeCourier(ctx context.Context, courierID int64) (*entities.CourierRating, error) {
	if courierID <= 0 {
		return nil, ErrInvalidCourierID
	}

	courier, err := r.couriers.GetByID(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("get courier: %w", err)
	}

	history, err := r.jobs.ListByCourier(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("list courier jobs: %w", err)
	}

	result := Compute(courier, history, time.Now().UTC())

	if err := r.couriers.UpdateRating(ctx, courierID, result.Stars); err != nil {
		return nil, fmt.Errorf("persist rating: %w", err)
	}
	return result, nil
}

// RecomputeAll — пакетный пересчёт по всему парку. Сбой на одном курьере
// логируется и не прерывает проход.
func (r *Rating) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := r.couriers.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list couriers: %w", err)
	}

	recomputed := 0
	for _, id := range ids {
		if _, err := r.RecomputeCourier(ctx, id); err != nil {
			r.log.With(
				logger.NewField("courier", id),
				logger.NewField("error", err),
			).Error("rating recompute failed, continuing batch")
			continue
		}
		recomputed++
	}
	return recomputed, nil
}

// Compute — чистая часть модели: суб-баллы 0..100, взвешенная сумма и
// перевод в звёзды 1.0..5.0 c округлением до одного знака.
func Compute(courier *entities.Courier, history []entities.DeliveryJob, now time.Time) *entities.CourierRating {
	// Курьер без истории получает стартовый рейтинг без прогона формулы.
	if len(history) == 0 {
		return &entities.CourierRating{
			CourierID:         courier.ID,
			AcceptanceScore:   100,
			CompletionScore:   100,
			ResponseTimeScore: 100,
			ReliabilityScore:  100,
			SatisfactionScore: 100,
			Composite:         100,
			Stars:             defaultStars,
			ComputedAt:        now,
		}
	}

	stats := collectStats(history)

	acceptance := rateOrFull(stats.accepted, stats.assigned)
	completion := rateOrFull(stats.delivered, stats.accepted)
	responseTime := responseTimeScore(stats.avgResponseMinutes, stats.responseSamples)
	reliability := reliabilityScore(courier, stats)
	satisfaction := satisfactionScore(stats.ratingSum, stats.ratedJobs)

	composite := weightAcceptance*acceptance +
		weightCompletion*completion +
		weightResponseTime*responseTime +
		weightReliability*reliability +
		weightSatisfaction*satisfaction

	stars := clamp(composite/20+1, minStars, maxStars)
	stars = math.Round(stars*10) / 10

	return &entities.CourierRating{
		CourierID:         courier.ID,
		AcceptanceScore:   acceptance,
		CompletionScore:   completion,
		ResponseTimeScore: responseTime,
		ReliabilityScore:  reliability,
		SatisfactionScore: satisfaction,
		Composite:         composite,
		Stars:             stars,
		ComputedAt:        now,
	}
}

type historyStats struct {
	assigned  int
	accepted  int
	delivered int
	cancelled int
	failed    int

	avgResponseMinutes float64
	responseSamples    int

	ratingSum float64
	ratedJobs int
}

func collectStats(history []entities.DeliveryJob) historyStats {
	stats := historyStats{assigned: len(history)}

	var responseTotal float64
	for i := range history {
		job := history[i]

		if job.AcceptedAt != nil {
			stats.accepted++
			if job.AssignedAt != nil {
				responseTotal += job.AcceptedAt.Sub(*job.AssignedAt).Minutes()
				stats.responseSamples++
			}
		}

		switch job.Status {
		case entities.JobDelivered:
			stats.delivered++
		case entities.JobCancelled:
			stats.cancelled++
		case entities.JobFailed:
			stats.failed++
		}

		if job.CustomerRating != nil {
			stats.ratingSum += *job.CustomerRating
			stats.ratedJobs++
		}
	}

	if stats.responseSamples > 0 {
		stats.avgResponseMinutes = responseTotal / float64(stats.responseSamples)
	}
	return stats
}

func rateOrFull(part, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(part) / float64(total) * 100
}

// responseTimeScore — кусочно-линейное отображение средней реакции:
// ≤1 мин → 100, ≤2 мин → 90, ≥10 мин → 0, между 2 и 10 — линейно.
func responseTimeScore(avgMinutes float64, samples int) float64 {
	if samples == 0 {
		return 100
	}

	switch {
	case avgMinutes <= 1:
		return 100
	case avgMinutes <= 2:
		return 90
	case avgMinutes >= 10:
		return 0
	default:
		return 90 * (10 - avgMinutes) / 8
	}
}

func reliabilityScore(courier *entities.Courier, stats historyStats) float64 {
	cancelRate := float64(stats.cancelled) / float64(stats.assigned) * 100
	failureRate := float64(stats.failed) / float64(stats.assigned) * 100

	score := 100.0
	score -= 3 * cancelRate
	score -= 4 * failureRate

	if courier.Suspended {
		score -= 50
	}
	if courier.Active && !courier.Suspended {
		score += 15
	}
	if courier.Online {
		score += 10
	}

	return clamp(score, 0, 100)
}

func satisfactionScore(ratingSum float64, ratedJobs int) float64 {
	if ratedJobs == 0 {
		return 100
	}
	avg := ratingSum / float64(ratedJobs)
	return avg * 20
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
