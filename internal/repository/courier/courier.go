package courier

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dispatch/internal/entities"
	"dispatch/internal/service/dispatch"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const courierColumns = `
	id, name, phone, active, online, suspended, lat, lon,
	total_assigned, total_accepted, total_completed, total_cancelled, total_failed,
	rating, created_at, updated_at`

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers WHERE id = $1`

	courierEntity, err := scanCourier(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dispatch.ErrCourierNotFound
		}
		return nil, fmt.Errorf("unexpected courier repository get error: %w", err)
	}
	return courierEntity, nil
}

// FindEligible выбирает активных и находящихся онлайн курьеров; при
// заданном центре дополнительно фильтрует по большекруговой дистанции,
// отсортировав кандидатов от ближних к дальним.
func (r *Repository) FindEligible(ctx context.Context, filter entities.EligibilityFilter) ([]entities.Courier, error) {
	builder := qb.
		Select(courierColumns).
		From("couriers").
		Where(sq.Eq{"active": filter.Active}).
		Where(sq.Eq{"online": filter.Online}).
		Where(sq.Eq{"suspended": false})

	if filter.Center != nil && filter.RadiusKm > 0 {
		distance := `
			6371 * acos(least(1.0,
				cos(radians(?)) * cos(radians(lat)) * cos(radians(lon) - radians(?)) +
				sin(radians(?)) * sin(radians(lat))
			))`
		builder = builder.
			Where("lat IS NOT NULL AND lon IS NOT NULL").
			Where(distance+" <= ?", filter.Center.Lat, filter.Center.Lon, filter.Center.Lat, filter.RadiusKm).
			OrderByClause(distance+" ASC", filter.Center.Lat, filter.Center.Lon, filter.Center.Lat)
	} else {
		builder = builder.OrderBy("id ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository find eligible error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository find eligible error: %w", err)
	}
	defer rows.Close()

	var couriers []entities.Courier
	for rows.Next() {
		courierEntity, err := scanCourier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan courier row: %w", err)
		}
		couriers = append(couriers, *courierEntity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courier rows: %w", err)
	}
	return couriers, nil
}

// ApplyCounters атомарно прибавляет ненулевые инкременты к счётчикам.
func (r *Repository) ApplyCounters(ctx context.Context, courierID int64, counters entities.CourierCounters) error {
	builder := qb.Update("couriers")

	if counters.Assigned != 0 {
		builder = builder.Set("total_assigned", sq.Expr("total_assigned + ?", counters.Assigned))
	}
	if counters.Accepted != 0 {
		builder = builder.Set("total_accepted", sq.Expr("total_accepted + ?", counters.Accepted))
	}
	if counters.Completed != 0 {
		builder = builder.Set("total_completed", sq.Expr("total_completed + ?", counters.Completed))
	}
	if counters.Cancelled != 0 {
		builder = builder.Set("total_cancelled", sq.Expr("total_cancelled + ?", counters.Cancelled))
	}
	if counters.Failed != 0 {
		builder = builder.Set("total_failed", sq.Expr("total_failed + ?", counters.Failed))
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": courierID})

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected courier repository counters error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected courier repository counters error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return dispatch.ErrCourierNotFound
	}
	return nil
}

func (r *Repository) UpdateRating(ctx context.Context, id int64, rating float64) error {
	query := `
		UPDATE couriers
		SET rating = $2,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id, rating)
	if err != nil {
		return fmt.Errorf("unexpected courier repository update rating error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return dispatch.ErrCourierNotFound
	}
	return nil
}

func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM couriers ORDER BY id ASC`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected courier repository list ids error: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan courier id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courier ids: %w", err)
	}
	return ids, nil
}

func scanCourier(row pgx.Row) (*entities.Courier, error) {
	var c CourierDB
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Active, &c.Online, &c.Suspended, &c.Lat, &c.Lon,
		&c.TotalAssigned, &c.TotalAccepted, &c.TotalCompleted, &c.TotalCancelled, &c.TotalFailed,
		&c.Rating, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ToDomain(&c), nil
}
