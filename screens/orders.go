package screens

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/statemachine"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	serialPrefix = "SN-"
	firstSerial  = 1000
)

type OrderQuery struct {
	Search string             `form:"search"`
	Status models.OrderStatus `form:"status" validate:"omitempty,oneof=pending delivered"`
	Sort   string             `form:"sort" validate:"omitempty,oneof=asc desc"`
}

type CreateOrderInput struct {
	Date           time.Time       `json:"date"`
	HouseNumber    string          `json:"house_number" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	NumberOfPeople int             `json:"number_of_people" validate:"min=1"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
}

type Orders struct {
	source   datasource.Source
	projects Projects
}

func NewOrders(source datasource.Source, projects Projects) *Orders {
	return &Orders{source: source, projects: projects}
}

// List returns the orders of a project matching q. A search term equal to a
// serial number selects that order only; otherwise it matches customer names
// and house numbers by substring.
func (s *Orders) List(ctx context.Context, projectID string, q OrderQuery) ([]models.Order, error) {
	if err := apierror.Validate(q); err != nil {
		return nil, err
	}
	orders, err := s.source.ListOrders(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if term != "" && !matchesOrder(o, term) {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if q.Sort == SortAsc {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func matchesOrder(o models.Order, term string) bool {
	return strings.ToLower(o.SerialNumber) == term ||
		strings.Contains(strings.ToLower(o.Name), term) ||
		strings.Contains(strings.ToLower(o.HouseNumber), term)
}

// Create records a pending order under the next free serial number.
func (s *Orders) Create(ctx context.Context, projectID string, input CreateOrderInput) (*models.Order, error) {
	input.HouseNumber = strings.TrimSpace(input.HouseNumber)
	input.Name = strings.TrimSpace(input.Name)
	if err := apierror.Validate(input); err != nil {
		return nil, err
	}
	existing, err := s.source.ListOrders(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	order := &models.Order{
		SerialNumber:   nextSerial(existing),
		Date:           input.Date,
		HouseNumber:    input.HouseNumber,
		Name:           input.Name,
		NumberOfPeople: input.NumberOfPeople,
		Amount:         input.Amount,
		Status:         models.StatusPending,
		ProjectID:      projectID,
	}
	if err := s.source.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	delivery := &models.Delivery{
		ProjectID: projectID,
		OrderID:   order.ID,
		Customer:  order.Name,
		Address:   order.HouseNumber,
		Status:    models.DeliveryAssigned,
	}
	if err := s.source.CreateDelivery(ctx, delivery); err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}
	if _, err := s.projects.RefreshStats(ctx, projectID); err != nil {
		return nil, err
	}
	log.Info().Str("project_id", projectID).Str("serial", order.SerialNumber).Msg("order created")
	return order, nil
}

func nextSerial(orders []models.Order) string {
	next := firstSerial
	for _, o := range orders {
		n, err := strconv.Atoi(strings.TrimPrefix(o.SerialNumber, serialPrefix))
		if err == nil && n >= next {
			next = n + 1
		}
	}
	return serialPrefix + strconv.Itoa(next)
}

// MarkDelivered moves a pending order to delivered. An order that is already
// delivered is returned unchanged.
func (s *Orders) MarkDelivered(ctx context.Context, role models.UserRole, projectID, orderID string) (*models.Order, error) {
	order, err := s.source.GetOrder(ctx, projectID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.StatusDelivered {
		return order, nil
	}
	if err := statemachine.CanTransitionOrder(order.Status, models.StatusDelivered, role); err != nil {
		return nil, err
	}

	order.Status = models.StatusDelivered
	if err := s.source.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if _, err := s.projects.RefreshStats(ctx, projectID); err != nil {
		return nil, err
	}
	log.Info().Str("project_id", projectID).Str("order_id", orderID).Msg("order delivered")
	return order, nil
}

func (s *Orders) Stats(ctx context.Context, projectID string) (models.DeliveryStats, error) {
	orders, err := s.source.ListOrders(ctx, projectID)
	if err != nil {
		return models.DeliveryStats{}, fmt.Errorf("list orders: %w", err)
	}
	return deliveryStats(orders), nil
}

func deliveryStats(orders []models.Order) models.DeliveryStats {
	var stats models.DeliveryStats
	for _, o := range orders {
		stats.TotalOrders++
		stats.TotalPeople += o.NumberOfPeople
		switch o.Status {
		case models.StatusPending:
			stats.PendingOrders++
			stats.PendingPeople += o.NumberOfPeople
		case models.StatusDelivered:
			stats.DeliveredOrders++
		}
	}
	return stats
}
