//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=earnings_test
package earnings

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	GetActive(ctx context.Context) (*entities.EarningsRuleSet, error)

	// Supersede снимает флаг active с текущего набора; вытесненные версии
	// остаются в хранилище для аудита.
	Supersede(ctx context.Context) error
	NextVersion(ctx context.Context) (int, error)
	Insert(ctx context.Context, version int, bands []entities.RuleBand) (*entities.EarningsRuleSet, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
