package earnings

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"dispatch/internal/entities"
)

var hundred = decimal.NewFromInt(100)

type Earnings struct {
	repository Repository
	txManager  TxManager
}

func New(repository Repository, txManager TxManager) *Earnings {
	return &Earnings{
		repository: repository,
		txManager:  txManager,
	}
}

// ComputeSplit вычисляет разбиение стоимости по активному набору правил.
// Результат детерминирован для пары (fee, ruleset).
func (e *Earnings) ComputeSplit(ctx context.Context, fee decimal.Decimal) (*entities.EarningsSplit, error) {
	if fee.Sign() <= 0 {
		return nil, ErrInvalidFee
	}

	ruleSet, err := e.repository.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active rule set: %w", err)
	}

	return Evaluate(fee, ruleSet)
}

func (e *Earnings) ActiveRuleSet(ctx context.Context) (*entities.EarningsRuleSet, error) {
	return e.repository.GetActive(ctx)
}

// SaveRuleSet валидирует и активирует новый набор правил одной транзакцией.
// Пересекающиеся или неполные диапазоны отклоняются до активации.
func (e *Earnings) SaveRuleSet(ctx context.Context, bands []entities.RuleBand) (*entities.EarningsRuleSet, error) {
	if err := ValidateBands(bands); err != nil {
		return nil, err
	}

	sorted := make([]entities.RuleBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinFee.LessThan(sorted[j].MinFee)
	})

	var ruleSet *entities.EarningsRuleSet
	err := e.txManager.Do(ctx, func(ctx context.Context) error {
		version, err := e.repository.NextVersion(ctx)
		if err != nil {
			return fmt.Errorf("next rule set version: %w", err)
		}

		if err := e.repository.Supersede(ctx); err != nil {
			return fmt.Errorf("supersede active rule set: %w", err)
		}

		ruleSet, err = e.repository.Insert(ctx, version, sorted)
		if err != nil {
			return fmt.Errorf("insert rule set: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ruleSet, nil
}

// Evaluate находит единственный диапазон, содержащий fee, и считает доли.
func Evaluate(fee decimal.Decimal, ruleSet *entities.EarningsRuleSet) (*entities.EarningsSplit, error) {
	for i := range ruleSet.Bands {
		band := ruleSet.Bands[i]
		if !band.Contains(fee) {
			continue
		}

		return &entities.EarningsSplit{
			DriverEarning:  partyShare(fee, band.DriverFixed, band.DriverPercentage),
			CompanyEarning: partyShare(fee, band.CompanyFixed, band.CompanyPercentage),
		}, nil
	}
	return nil, fmt.Errorf("%w: fee=%s version=%d", ErrNoMatchingBand, fee, ruleSet.Version)
}

func partyShare(fee decimal.Decimal, fixed, percentage *decimal.Decimal) decimal.Decimal {
	if fixed != nil {
		return *fixed
	}
	return fee.Mul(*percentage).Div(hundred)
}

// ValidateBands проверяет набор до сохранения: сортировка по MinFee, затем
// для соседних пар maxFeeᵢ < minFeeᵢ₊₁, и для каждой стороны каждой полосы
// задано ровно одно из пары fixed/percentage.
func ValidateBands(bands []entities.RuleBand) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: empty band list", ErrInvalidRuleSet)
	}

	sorted := make([]entities.RuleBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinFee.LessThan(sorted[j].MinFee)
	})

	for i := range sorted {
		band := sorted[i]

		if band.MinFee.Sign() < 0 {
			return fmt.Errorf("%w: negative minFee %s", ErrInvalidRuleSet, band.MinFee)
		}
		if band.MaxFee.LessThan(band.MinFee) {
			return fmt.Errorf("%w: band [%s, %s] reversed", ErrInvalidRuleSet, band.MinFee, band.MaxFee)
		}

		if err := validateParty(band.DriverFixed, band.DriverPercentage, "driver"); err != nil {
			return err
		}
		if err := validateParty(band.CompanyFixed, band.CompanyPercentage, "company"); err != nil {
			return err
		}

		if i > 0 && !sorted[i-1].MaxFee.LessThan(band.MinFee) {
			return fmt.Errorf("%w: bands [%s, %s] and [%s, %s] overlap",
				ErrInvalidRuleSet,
				sorted[i-1].MinFee, sorted[i-1].MaxFee,
				band.MinFee, band.MaxFee,
			)
		}
	}
	return nil
}

func validateParty(fixed, percentage *decimal.Decimal, party string) error {
	if (fixed == nil) == (percentage == nil) {
		return fmt.Errorf("%w: %s must set exactly one of fixed/percentage", ErrInvalidRuleSet, party)
	}
	if fixed != nil && fixed.Sign() < 0 {
		return fmt.Errorf("%w: %s fixed amount is negative", ErrInvalidRuleSet, party)
	}
	if percentage != nil && (percentage.Sign() < 0 || percentage.GreaterThan(hundred)) {
		return fmt.Errorf("%w: %s percentage out of [0, 100]", ErrInvalidRuleSet, party)
	}
	return nil
}
