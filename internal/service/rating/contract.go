//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rating_test
package rating

import (
	"context"

	"dispatch/internal/entities"
)

type JobHistory interface {
	ListByCourier(ctx context.Context, courierID int64) ([]entities.DeliveryJob, error)
}

type CourierRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Courier, error)
	ListIDs(ctx context.Context) ([]int64, error)

	// UpdateRating — единственная точка записи поля rating.
	UpdateRating(ctx context.Context, id int64, rating float64) error
}
