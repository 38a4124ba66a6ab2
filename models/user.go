package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines the access levels of the dashboard, ordered by privilege.
type UserRole string

const (
	RoleMainAdmin UserRole = "main_admin"
	RoleAdmin     UserRole = "admin"
	RoleUser      UserRole = "user"
)

// AllRoles lists every role from most to least privileged.
var AllRoles = []UserRole{RoleMainAdmin, RoleAdmin, RoleUser}

// Valid reports whether r belongs to the closed role set.
func (r UserRole) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID               string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name             string            `json:"name"`
	Email            string            `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash     string            `json:"-"`
	Role             UserRole          `json:"role" gorm:"not null;default:'main_admin'"`
	ExternalProjects []ExternalProject `json:"external_projects" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ExternalProject holds credentials of a provisioned backing database project
// linked to a user account.
type ExternalProject struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	APIURL      string    `json:"api_url"`
	APIKey      string    `json:"api_key"`
	AnonKey     string    `json:"anon_key"`
	DatabaseURL string    `json:"database_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *ExternalProject) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
