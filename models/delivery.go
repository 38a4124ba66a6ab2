package models

import "time"

type DriverStatus string

const (
	DriverAvailable  DriverStatus = "available"
	DriverDelivering DriverStatus = "delivering"
	DriverOffline    DriverStatus = "offline"
)

type Driver struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID    string       `json:"project_id" gorm:"index;not null"`
	Name         string       `json:"name" gorm:"not null"`
	Status       DriverStatus `json:"status" gorm:"not null;default:'available'"`
	ActiveOrders int          `json:"active_orders"`
	Location     string       `json:"location"`
	LastUpdate   time.Time    `json:"last_update"`
}

// DeliveryStatus tracks a delivery from assignment to completion
type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryPicked    DeliveryStatus = "picked"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Active reports whether the delivery is still on its way.
func (s DeliveryStatus) Active() bool {
	return s == DeliveryAssigned || s == DeliveryPicked || s == DeliveryInTransit
}

type Delivery struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID     string         `json:"project_id" gorm:"index;not null"`
	OrderID       string         `json:"order_id"`
	Customer      string         `json:"customer"`
	Status        DeliveryStatus `json:"status" gorm:"not null;default:'assigned'"`
	Address       string         `json:"address"`
	DriverID      string         `json:"driver_id"`
	EstimatedTime string         `json:"estimated_time"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
