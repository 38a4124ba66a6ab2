package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectStats is the denormalized aggregate snapshot stored on each project.
// Balance always equals TotalIncome minus TotalExpenditure at the time of the
// last recomputation.
type ProjectStats struct {
	TotalOrders       int             `json:"total_orders"`
	PendingDeliveries int             `json:"pending_deliveries"`
	TotalIncome       decimal.Decimal `json:"total_income" gorm:"type:decimal(14,2);default:0"`
	TotalExpenditure  decimal.Decimal `json:"total_expenditure" gorm:"type:decimal(14,2);default:0"`
	Balance           decimal.Decimal `json:"balance" gorm:"type:decimal(14,2);default:0"`
}

// Project is a tenant: one isolated food-delivery operation.
type Project struct {
	ID         string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string       `json:"name" gorm:"not null"`
	Code       string       `json:"code" gorm:"uniqueIndex;not null"`
	OwnerID    string       `json:"owner_id" gorm:"index;not null"`
	APIKey     string       `json:"-"`
	DBKey      string       `json:"-"`
	Stats      ProjectStats `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	CreatedAt  time.Time    `json:"created_at"`
	LastActive time.Time    `json:"last_active"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.LastActive.IsZero() {
		p.LastActive = time.Now()
	}
	return nil
}

// ProjectMembership links a user to a project they created or joined.
type ProjectMembership struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID string    `json:"project_id" gorm:"not null;uniqueIndex:idx_member_project"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_member_project"`
	Role      UserRole  `json:"role" gorm:"not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectSummary pairs a project with its current stats.
type ProjectSummary struct {
	Project Project      `json:"project"`
	Stats   ProjectStats `json:"stats"`
}

func NewSummary(p Project) ProjectSummary {
	return ProjectSummary{Project: p, Stats: p.Stats}
}
