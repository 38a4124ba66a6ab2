package datasource

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"food-delivery-dashboard/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeededSource keeps tenant records in memory and synthesizes sample data the
// first time a project is read. The same seed and project id always produce
// the same sample records.
type SeededSource struct {
	seed int64
	now  func() time.Time

	mu      sync.Mutex
	tenants map[string]*tenantData
}

type tenantData struct {
	orders       []models.Order
	expenditures []models.Expenditure
	drivers      []models.Driver
	deliveries   []models.Delivery
}

func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{seed: seed, now: time.Now, tenants: make(map[string]*tenantData)}
}

var (
	driverNames     = []string{"John Smith", "Maria Garcia", "David Chen", "Sarah Johnson", "Ahmed Khan"}
	driverLocations = []string{"Downtown", "North District", "East Side", "West End", "Harbor"}
	driverStatuses  = []models.DriverStatus{models.DriverDelivering, models.DriverAvailable, models.DriverAvailable, models.DriverOffline, models.DriverDelivering}
	deliveryFlow    = []models.DeliveryStatus{models.DeliveryAssigned, models.DeliveryPicked, models.DeliveryInTransit, models.DeliveryDelivered, models.DeliveryFailed}
	deliveryETAs    = []string{"15-20 min", "10-15 min", "5-10 min", "0 min", "0 min"}
)

const sampleSize = 5

func (s *SeededSource) tenant(projectID string) *tenantData {
	if t, ok := s.tenants[projectID]; ok {
		return t
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(projectID))
	rng := rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))
	day := s.now().UTC().Truncate(24 * time.Hour)

	t := &tenantData{}
	for i := 0; i < sampleSize; i++ {
		date := day.AddDate(0, 0, -i)
		status := models.StatusPending
		if i%3 == 0 {
			status = models.StatusDelivered
		}
		t.orders = append(t.orders, models.Order{
			ID:             uuid.NewString(),
			SerialNumber:   fmt.Sprintf("SN-%d", 1000+i),
			Date:           date,
			HouseNumber:    fmt.Sprintf("H-%d", 100+i),
			Name:           fmt.Sprintf("Customer %d", i+1),
			NumberOfPeople: rng.Intn(5) + 1,
			Amount:         decimal.NewFromInt(int64(rng.Intn(5000) + 1000)),
			Status:         status,
			ProjectID:      projectID,
			CreatedAt:      date,
			UpdatedAt:      date,
		})

		category := models.ExpenditureCategories[i%len(models.ExpenditureCategories)]
		t.expenditures = append(t.expenditures, models.Expenditure{
			ID:          uuid.NewString(),
			Category:    category,
			Amount:      decimal.NewFromInt(int64(rng.Intn(3000) + 500)),
			Date:        date,
			Description: fmt.Sprintf("%s expense %d", category, i+1),
			ProjectID:   projectID,
			CreatedAt:   date,
		})

		driverID := fmt.Sprintf("D%03d", i+1)
		active := 0
		if driverStatuses[i] == models.DriverDelivering {
			active = rng.Intn(3) + 1
		}
		t.drivers = append(t.drivers, models.Driver{
			ID:           driverID,
			ProjectID:    projectID,
			Name:         driverNames[i],
			Status:       driverStatuses[i],
			ActiveOrders: active,
			Location:     driverLocations[i],
			LastUpdate:   s.now().Add(-time.Duration(rng.Intn(30)) * time.Minute),
		})

		order := t.orders[i]
		t.deliveries = append(t.deliveries, models.Delivery{
			ID:            fmt.Sprintf("DEL-%d", 3921-i),
			ProjectID:     projectID,
			OrderID:       order.ID,
			Customer:      order.Name,
			Status:        deliveryFlow[i],
			Address:       order.HouseNumber,
			DriverID:      fmt.Sprintf("D%03d", rng.Intn(sampleSize)+1),
			EstimatedTime: deliveryETAs[i],
			UpdatedAt:     date,
		})
	}

	s.tenants[projectID] = t
	return t
}

func (s *SeededSource) ListOrders(_ context.Context, projectID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.tenant(projectID).orders...), nil
}

func (s *SeededSource) GetOrder(_ context.Context, projectID, orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.tenant(projectID).orders {
		if o.ID == orderID {
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *SeededSource) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := s.now()
	order.CreatedAt, order.UpdatedAt = now, now
	t := s.tenant(order.ProjectID)
	t.orders = append(t.orders, *order)
	return nil
}

func (s *SeededSource) UpdateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenant(order.ProjectID)
	for i := range t.orders {
		if t.orders[i].ID == order.ID {
			order.UpdatedAt = s.now()
			t.orders[i] = *order
			return nil
		}
	}
	return ErrNotFound
}

func (s *SeededSource) ListExpenditures(_ context.Context, projectID string) ([]models.Expenditure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Expenditure(nil), s.tenant(projectID).expenditures...), nil
}

func (s *SeededSource) CreateExpenditure(_ context.Context, expenditure *models.Expenditure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expenditure.ID == "" {
		expenditure.ID = uuid.NewString()
	}
	expenditure.CreatedAt = s.now()
	t := s.tenant(expenditure.ProjectID)
	t.expenditures = append(t.expenditures, *expenditure)
	return nil
}

func (s *SeededSource) ListDrivers(_ context.Context, projectID string) ([]models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Driver(nil), s.tenant(projectID).drivers...), nil
}

func (s *SeededSource) CreateDriver(_ context.Context, driver *models.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if driver.ID == "" {
		driver.ID = uuid.NewString()
	}
	driver.LastUpdate = s.now()
	t := s.tenant(driver.ProjectID)
	t.drivers = append(t.drivers, *driver)
	return nil
}

func (s *SeededSource) ListDeliveries(_ context.Context, projectID string) ([]models.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Delivery(nil), s.tenant(projectID).deliveries...), nil
}

func (s *SeededSource) GetDelivery(_ context.Context, projectID, deliveryID string) (*models.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.tenant(projectID).deliveries {
		if d.ID == deliveryID {
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

// CreateDelivery puts the new delivery first, matching the newest-first
// order of the sample data.
func (s *SeededSource) CreateDelivery(_ context.Context, delivery *models.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delivery.ID == "" {
		delivery.ID = uuid.NewString()
	}
	delivery.UpdatedAt = s.now()
	t := s.tenant(delivery.ProjectID)
	t.deliveries = append([]models.Delivery{*delivery}, t.deliveries...)
	return nil
}

func (s *SeededSource) UpdateDelivery(_ context.Context, delivery *models.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenant(delivery.ProjectID)
	for i := range t.deliveries {
		if t.deliveries[i].ID == delivery.ID {
			delivery.UpdatedAt = s.now()
			t.deliveries[i] = *delivery
			return nil
		}
	}
	return ErrNotFound
}

func (s *SeededSource) DeleteProjectData(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tenants, projectID)
	return nil
}
