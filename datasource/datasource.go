// Package datasource is the port through which screens read and write tenant
// records.
package datasource

import (
	"context"
	"errors"

	"food-delivery-dashboard/models"
)

var ErrNotFound = errors.New("record not found")

// Source supplies the per-project records behind every screen.
type Source interface {
	ListOrders(ctx context.Context, projectID string) ([]models.Order, error)
	GetOrder(ctx context.Context, projectID, orderID string) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, order *models.Order) error

	ListExpenditures(ctx context.Context, projectID string) ([]models.Expenditure, error)
	CreateExpenditure(ctx context.Context, expenditure *models.Expenditure) error

	ListDrivers(ctx context.Context, projectID string) ([]models.Driver, error)
	CreateDriver(ctx context.Context, driver *models.Driver) error
	ListDeliveries(ctx context.Context, projectID string) ([]models.Delivery, error)
	GetDelivery(ctx context.Context, projectID, deliveryID string) (*models.Delivery, error)
	CreateDelivery(ctx context.Context, delivery *models.Delivery) error
	UpdateDelivery(ctx context.Context, delivery *models.Delivery) error

	DeleteProjectData(ctx context.Context, projectID string) error
}
