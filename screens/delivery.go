package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery-dashboard/apierror"
	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/models"
	"food-delivery-dashboard/statemachine"

	"github.com/rs/zerolog/log"
)

type DeliveryView string

const (
	ViewActive  DeliveryView = "active"
	ViewHistory DeliveryView = "history"
	ViewAll     DeliveryView = "all"
)

type Delivery struct {
	source datasource.Source
	orders *Orders
}

func NewDelivery(source datasource.Source, orders *Orders) *Delivery {
	return &Delivery{source: source, orders: orders}
}

// ListDeliveries splits deliveries into those still on the road (active)
// and those that reached a final state (history).
func (s *Delivery) ListDeliveries(ctx context.Context, projectID string, view DeliveryView) ([]models.Delivery, error) {
	if view == "" {
		view = ViewAll
	}
	if view != ViewActive && view != ViewHistory && view != ViewAll {
		return nil, apierror.NewValidation("view", "oneof=active history all")
	}
	deliveries, err := s.source.ListDeliveries(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	if view == ViewAll {
		return deliveries, nil
	}

	out := make([]models.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if d.Status.Active() == (view == ViewActive) {
			out = append(out, d)
		}
	}
	return out, nil
}

type DriverInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Location string `json:"location" validate:"max=100"`
}

// AddDriver registers a driver. New drivers start available.
func (s *Delivery) AddDriver(ctx context.Context, projectID string, input DriverInput) (*models.Driver, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	if err := apierror.Validate(input); err != nil {
		return nil, err
	}
	driver := &models.Driver{
		ProjectID: projectID,
		Name:      input.Name,
		Status:    models.DriverAvailable,
		Location:  input.Location,
	}
	if err := s.source.CreateDriver(ctx, driver); err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	log.Info().Str("project_id", projectID).Str("driver_id", driver.ID).Msg("driver added")
	return driver, nil
}

func (s *Delivery) ListDrivers(ctx context.Context, projectID string, status models.DriverStatus) ([]models.Driver, error) {
	switch status {
	case "", models.DriverAvailable, models.DriverDelivering, models.DriverOffline:
	default:
		return nil, apierror.NewValidation("status", "oneof=available delivering offline")
	}
	drivers, err := s.source.ListDrivers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	if status == "" {
		return drivers, nil
	}
	out := drivers[:0]
	for _, d := range drivers {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

// AdvanceDelivery moves a delivery to status to. Completing a delivery also
// marks its order as delivered.
func (s *Delivery) AdvanceDelivery(ctx context.Context, role models.UserRole, projectID, deliveryID string, to models.DeliveryStatus) (*models.Delivery, error) {
	delivery, err := s.source.GetDelivery(ctx, projectID, deliveryID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransitionDelivery(delivery.Status, to, role); err != nil {
		return nil, err
	}

	delivery.Status = to
	if err := s.source.UpdateDelivery(ctx, delivery); err != nil {
		return nil, fmt.Errorf("update delivery: %w", err)
	}
	log.Info().Str("project_id", projectID).Str("delivery_id", deliveryID).Str("status", string(to)).Msg("delivery advanced")

	if to == models.DeliveryDelivered && delivery.OrderID != "" {
		_, err := s.orders.MarkDelivered(ctx, role, projectID, delivery.OrderID)
		if err != nil && !errors.Is(err, datasource.ErrNotFound) {
			return nil, err
		}
	}
	return delivery, nil
}
