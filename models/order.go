package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the delivery state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
)

type Order struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SerialNumber   string          `json:"serial_number" gorm:"not null;index"`
	Date           time.Time       `json:"date"`
	HouseNumber    string          `json:"house_number" gorm:"not null"`
	Name           string          `json:"name" gorm:"not null"`
	NumberOfPeople int             `json:"number_of_people"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Status         OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	ProjectID      string          `json:"project_id" gorm:"index;not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ExpenditureCategories is the fixed set of spending categories.
var ExpenditureCategories = []string{"Transport", "Packaging", "Salaries", "Utilities", "Misc"}

type Expenditure struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Category    string          `json:"category" gorm:"not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	ProjectID   string          `json:"project_id" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (e *Expenditure) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// FinancialSummary is derived by folding over orders and expenditures.
type FinancialSummary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenditure decimal.Decimal `json:"total_expenditure"`
	Balance          decimal.Decimal `json:"balance"`
}

type DeliveryStats struct {
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	DeliveredOrders int `json:"delivered_orders"`
	TotalPeople     int `json:"total_people"`
	PendingPeople   int `json:"pending_people"`
}
