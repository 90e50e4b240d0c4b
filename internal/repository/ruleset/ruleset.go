package ruleset

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"dispatch/internal/entities"
	"dispatch/internal/service/earnings"
)

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

func (r *Repository) GetActive(ctx context.Context) (*entities.EarningsRuleSet, error) {
	query := `
		SELECT id, version, active, created_at
		FROM earnings_rule_sets
		WHERE active
		LIMIT 1`

	var setDB RuleSetDB
	err := r.querier.QueryRow(ctx, query).Scan(&setDB.ID, &setDB.Version, &setDB.Active, &setDB.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, earnings.ErrNoActiveRuleSet
		}
		return nil, fmt.Errorf("unexpected rule set repository get active error: %w", err)
	}

	bands, err := r.listBands(ctx, setDB.ID)
	if err != nil {
		return nil, err
	}
	return ToDomain(&setDB, bands)
}

// Supersede деактивирует текущий набор; строки наборов никогда не удаляются.
func (r *Repository) Supersede(ctx context.Context) error {
	query := `UPDATE earnings_rule_sets SET active = FALSE WHERE active`

	_, err := r.querier.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("unexpected rule set repository supersede error: %w", err)
	}
	return nil
}

func (r *Repository) NextVersion(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(version), 0) + 1 FROM earnings_rule_sets`

	var version int
	if err := r.querier.QueryRow(ctx, query).Scan(&version); err != nil {
		return 0, fmt.Errorf("unexpected rule set repository next version error: %w", err)
	}
	return version, nil
}

func (r *Repository) Insert(ctx context.Context, version int, bands []entities.RuleBand) (*entities.EarningsRuleSet, error) {
	query := `
		INSERT INTO earnings_rule_sets (version, active)
		VALUES ($1, TRUE)
		RETURNING id, version, active, created_at`

	var setDB RuleSetDB
	err := r.querier.QueryRow(ctx, query, version).
		Scan(&setDB.ID, &setDB.Version, &setDB.Active, &setDB.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("unexpected rule set repository insert error: %w", err)
	}

	bandQuery := `
		INSERT INTO earnings_rule_bands (
			rule_set_id, position, min_fee, max_fee,
			driver_fixed, driver_percentage, company_fixed, company_percentage
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range bands {
		band := bands[i]
		_, err := r.querier.Exec(
			ctx, bandQuery,
			setDB.ID, i,
			band.MinFee.String(), band.MaxFee.String(),
			moneyArg(band.DriverFixed), moneyArg(band.DriverPercentage),
			moneyArg(band.CompanyFixed), moneyArg(band.CompanyPercentage),
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected rule set repository insert band error: %w", err)
		}
	}

	bandRows, err := r.listBands(ctx, setDB.ID)
	if err != nil {
		return nil, err
	}
	return ToDomain(&setDB, bandRows)
}

func (r *Repository) listBands(ctx context.Context, ruleSetID int64) ([]RuleBandDB, error) {
	query := `
		SELECT min_fee::text, max_fee::text,
		       driver_fixed::text, driver_percentage::text,
		       company_fixed::text, company_percentage::text
		FROM earnings_rule_bands
		WHERE rule_set_id = $1
		ORDER BY position ASC`

	rows, err := r.querier.Query(ctx, query, ruleSetID)
	if err != nil {
		return nil, fmt.Errorf("unexpected rule set repository list bands error: %w", err)
	}
	defer rows.Close()

	var bands []RuleBandDB
	for rows.Next() {
		var b RuleBandDB
		err := rows.Scan(
			&b.MinFee, &b.MaxFee,
			&b.DriverFixed, &b.DriverPercentage,
			&b.CompanyFixed, &b.CompanyPercentage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan rule band row: %w", err)
		}
		bands = append(bands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rule band rows: %w", err)
	}
	return bands, nil
}

func moneyArg(v *decimal.Decimal) any {
	if v == nil {
		return nil
	}
	return v.String()
}
