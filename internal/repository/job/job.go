package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/dispatch"
)

// jobColumns — единый список колонок; порядок обязан совпадать со scanJob.
const jobColumns = `
	id, code, fee::text, payment_method, priority,
	pickup_lat, pickup_lon, drop_lat, drop_lon,
	broadcast_radius_km, broadcast_ttl_seconds,
	broadcast_status, status, assigned_to, assigned_at, accepted_at,
	broadcast_end_time, broadcast_attempts, max_attempts,
	driver_earning::text, company_earning::text, customer_rating,
	created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, jobModify entities.JobModify) (*entities.DeliveryJob, error) {
	pickupLat, pickupLon := fromPoint(jobModify.Pickup)
	dropLat, dropLon := fromPoint(jobModify.Drop)

	query := `
		INSERT INTO jobs (
			id, code, fee, payment_method, priority,
			pickup_lat, pickup_lon, drop_lat, drop_lon,
			broadcast_radius_km, broadcast_ttl_seconds, max_attempts
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + jobColumns

	paymentMethod := ""
	if jobModify.PaymentMethod != nil {
		paymentMethod = jobModify.PaymentMethod.String()
	}

	row := r.querier.QueryRow(
		ctx,
		query,
		uuid.New(),
		*jobModify.Code,
		jobModify.Fee.String(),
		paymentMethod,
		jobModify.Priority.String(),
		pickupLat, pickupLon,
		dropLat, dropLon,
		*jobModify.BroadcastRadius,
		int64(jobModify.BroadcastTTL.Seconds()),
		*jobModify.MaxAttempts,
	)

	jobEntity, err := scanJob(row)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, dispatch.ErrJobAlreadyExists
		}
		return nil, fmt.Errorf("unexpected job repository create error: %w", err)
	}
	return jobEntity, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DeliveryJob, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	jobEntity, err := scanJob(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrJobNotFound
		}
		return nil, fmt.Errorf("unexpected job repository get error: %w", err)
	}
	return jobEntity, nil
}

// StartBroadcast — условный переход в broadcasting. Возвращает nil, nil,
// когда исходный статус уже не из списка from.
func (r *Repository) StartBroadcast(
	ctx context.Context,
	id uuid.UUID,
	from []entities.BroadcastStatus,
	radiusKm float64,
	offeredAt, endsAt time.Time,
) (*entities.DeliveryJob, error) {
	query := `
		UPDATE jobs
		SET broadcast_status = 'broadcasting',
		    status = 'broadcasting',
		    broadcast_radius_km = $2,
		    assigned_at = $3,
		    broadcast_end_time = $4,
		    broadcast_attempts = broadcast_attempts + 1,
		    updated_at = NOW()
		WHERE id = $1
		  AND broadcast_status = ANY($5)
		  AND assigned_to IS NULL
		RETURNING ` + jobColumns

	return r.conditional(r.querier.QueryRow(ctx, query, id, radiusKm, offeredAt, endsAt, broadcastStatusStrings(from)))
}

// Accept — единственная точка разрешения гонки принятия: предикат по
// broadcast_status, assigned_to и дедлайну проверяется в момент записи.
func (r *Repository) Accept(
	ctx context.Context,
	id uuid.UUID,
	courierID int64,
	split entities.EarningsSplit,
	now time.Time,
) (*entities.DeliveryJob, error) {
	query := `
		UPDATE jobs
		SET broadcast_status = 'accepted',
		    status = 'assigned',
		    assigned_to = $2,
		    accepted_at = $3,
		    driver_earning = $4,
		    company_earning = $5,
		    updated_at = NOW()
		WHERE id = $1
		  AND broadcast_status = 'broadcasting'
		  AND assigned_to IS NULL
		  AND broadcast_end_time >= $3
		RETURNING ` + jobColumns

	return r.conditional(r.querier.QueryRow(
		ctx, query, id, courierID, now,
		split.DriverEarning.String(), split.CompanyEarning.String(),
	))
}

// MarkExpired не трогает задания в терминальном статусе: отмена во время
// трансляции закрывает жизненный цикл, и sweep не должен его воскрешать.
func (r *Repository) MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (*entities.DeliveryJob, error) {
	query := `
		UPDATE jobs
		SET broadcast_status = 'expired',
		    status = 'pending',
		    updated_at = NOW()
		WHERE id = $1
		  AND broadcast_status = 'broadcasting'
		  AND assigned_to IS NULL
		  AND broadcast_end_time < $2
		  AND status NOT IN ('delivered', 'cancelled', 'failed')
		RETURNING ` + jobColumns

	return r.conditional(r.querier.QueryRow(ctx, query, id, now))
}

func (r *Repository) MarkManualPending(ctx context.Context, id uuid.UUID) (*entities.DeliveryJob, error) {
	query := `
		UPDATE jobs
		SET broadcast_status = 'manual_assignment',
		    updated_at = NOW()
		WHERE id = $1
		  AND broadcast_status = 'expired'
		  AND assigned_to IS NULL
		RETURNING ` + jobColumns

	return r.conditional(r.querier.QueryRow(ctx, query, id))
}

// ManualAssign не трогает accepted_at: административное назначение — это
// не принятие курьером.
func (r *Repository) ManualAssign(
	ctx context.Context,
	id uuid.UUID,
	courierID int64,
	split entities.EarningsSplit,
	now time.Time,
) (*entities.DeliveryJob, error) {
	query := `
		UPDATE jobs
		SET broadcast_status = 'accepted',
		    status = 'assigned',
		    assigned_to = $2,
		    assigned_at = COALESCE(assigned_at, $3),
		    driver_earning = $4,
		    company_earning = $5,
		    updated_at = NOW()
		WHERE id = $1
		  AND broadcast_status = 'manual_assignment'
		  AND assigned_to IS NULL
		RETURNING ` + jobColumns

	return r.conditional(r.querier.QueryRow(
		ctx, query, id, courierID, now,
		split.DriverEarning.String(), split.CompanyEarning.String(),
	))
}

func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, from []entities.JobStatus, to entities.JobStatus) (*entities.DeliveryJob, error) {
	query := `
		UPDATE jobs
		SET status = $2,
		    updated_at = NOW()
		WHERE id = $1
		  AND status = ANY($3)
		RETURNING ` + jobColumns

	return r.conditional(r.querier.QueryRow(ctx, query, id, to.String(), statusStrings(from)))
}

func (r *Repository) SetCustomerRating(ctx context.Context, id uuid.UUID, rating float64) error {
	query := `
		UPDATE jobs
		SET customer_rating = $2,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id, rating)
	if err != nil {
		return fmt.Errorf("unexpected job repository set customer rating error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return dispatch.ErrJobNotFound
	}
	return nil
}

func (r *Repository) ListExpiredBroadcasting(ctx context.Context, now time.Time) ([]entities.DeliveryJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE broadcast_status = 'broadcasting'
		  AND assigned_to IS NULL
		  AND broadcast_end_time < $1
		  AND status NOT IN ('delivered', 'cancelled', 'failed')
		ORDER BY broadcast_end_time ASC`

	rows, err := r.querier.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("unexpected job repository list expired error: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *Repository) ListByCourier(ctx context.Context, courierID int64) ([]entities.DeliveryJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE assigned_to = $1
		ORDER BY created_at ASC`

	rows, err := r.querier.Query(ctx, query, courierID)
	if err != nil {
		return nil, fmt.Errorf("unexpected job repository list by courier error: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// conditional нормализует исход условного обновления: отсутствие строки —
// это отвергнутый переход, а не ошибка.
func (r *Repository) conditional(row pgx.Row) (*entities.DeliveryJob, error) {
	jobEntity, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("unexpected job repository conditional update error: %w", err)
	}
	return jobEntity, nil
}

func scanJob(row pgx.Row) (*entities.DeliveryJob, error) {
	var j JobDB
	err := row.Scan(
		&j.ID, &j.Code, &j.Fee, &j.PaymentMethod, &j.Priority,
		&j.PickupLat, &j.PickupLon, &j.DropLat, &j.DropLon,
		&j.BroadcastRadiusKm, &j.BroadcastTTLSeconds,
		&j.BroadcastStatus, &j.Status, &j.AssignedTo, &j.AssignedAt, &j.AcceptedAt,
		&j.BroadcastEndTime, &j.BroadcastAttempts, &j.MaxAttempts,
		&j.DriverEarning, &j.CompanyEarning, &j.CustomerRating,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ToDomain(&j)
}

func collectJobs(rows pgx.Rows) ([]entities.DeliveryJob, error) {
	var jobs []entities.DeliveryJob
	for rows.Next() {
		jobEntity, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, *jobEntity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job rows: %w", err)
	}
	return jobs, nil
}
