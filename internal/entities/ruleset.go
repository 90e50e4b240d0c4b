package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarningsRuleSet — версионированный набор тарифных диапазонов.
// Активен всегда ровно один набор; вытесненные версии хранятся для аудита
// и никогда не изменяются.
type EarningsRuleSet struct {
	ID        int64
	Version   int
	Active    bool
	Bands     []RuleBand
	CreatedAt time.Time
}

// RuleBand — закрытый интервал [MinFee, MaxFee] стоимости доставки.
// Для каждой стороны задано ровно одно из пары fixed/percentage.
type RuleBand struct {
	MinFee decimal.Decimal
	MaxFee decimal.Decimal

	DriverFixed       *decimal.Decimal
	DriverPercentage  *decimal.Decimal
	CompanyFixed      *decimal.Decimal
	CompanyPercentage *decimal.Decimal
}

// Contains сообщает, попадает ли стоимость в диапазон.
func (b RuleBand) Contains(fee decimal.Decimal) bool {
	return fee.GreaterThanOrEqual(b.MinFee) && fee.LessThanOrEqual(b.MaxFee)
}
