package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vetdesk-backend/utils"
)

// Role is the closed set of caller roles. It is resolved once at the auth
// boundary; handlers never branch on raw role strings.
type Role string

const (
	RoleClient       Role = "client"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
)

// ParseRole maps a stored role value to the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleVeterinarian, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`

	Role Role `gorm:"type:varchar(20);not null" json:"role"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
