package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-dashboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSource reads and writes tenant records in the main database.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (s *GormSource) ListOrders(ctx context.Context, projectID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("date desc").Find(&orders).Error
	return orders, err
}

func (s *GormSource) GetOrder(ctx context.Context, projectID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("project_id = ? AND id = ?", projectID, orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &order, err
}

func (s *GormSource) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *GormSource) UpdateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Save(order).Error
}

func (s *GormSource) ListExpenditures(ctx context.Context, projectID string) ([]models.Expenditure, error) {
	var expenditures []models.Expenditure
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("date desc").Find(&expenditures).Error
	return expenditures, err
}

func (s *GormSource) CreateExpenditure(ctx context.Context, expenditure *models.Expenditure) error {
	return s.db.WithContext(ctx).Create(expenditure).Error
}

func (s *GormSource) ListDrivers(ctx context.Context, projectID string) ([]models.Driver, error) {
	var drivers []models.Driver
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("name asc").Find(&drivers).Error
	return drivers, err
}

func (s *GormSource) ListDeliveries(ctx context.Context, projectID string) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("updated_at desc").Find(&deliveries).Error
	return deliveries, err
}

func (s *GormSource) GetDelivery(ctx context.Context, projectID, deliveryID string) (*models.Delivery, error) {
	var delivery models.Delivery
	err := s.db.WithContext(ctx).Where("project_id = ? AND id = ?", projectID, deliveryID).First(&delivery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &delivery, err
}

func (s *GormSource) UpdateDelivery(ctx context.Context, delivery *models.Delivery) error {
	return s.db.WithContext(ctx).Save(delivery).Error
}

func (s *GormSource) CreateDriver(ctx context.Context, driver *models.Driver) error {
	if driver.ID == "" {
		driver.ID = uuid.NewString()
	}
	if driver.LastUpdate.IsZero() {
		driver.LastUpdate = time.Now()
	}
	return s.db.WithContext(ctx).Create(driver).Error
}

func (s *GormSource) CreateDelivery(ctx context.Context, delivery *models.Delivery) error {
	if delivery.ID == "" {
		delivery.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(delivery).Error
}

func (s *GormSource) DeleteProjectData(ctx context.Context, projectID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Order{}, &models.Expenditure{}, &models.Driver{}, &models.Delivery{}} {
			if err := tx.Where("project_id = ?", projectID).Delete(m).Error; err != nil {
				return fmt.Errorf("delete project data: %w", err)
			}
		}
		return nil
	})
}
