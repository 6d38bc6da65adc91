package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID          uint      `json:"-" gorm:"primarykey"`
	Username    string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	FirstName   string    `json:"first_name" gorm:"size:150"`
	LastName    string    `json:"last_name" gorm:"size:150"`
	Bio         string    `json:"bio" gorm:"type:text"`
	Role        UserRole  `json:"role" gorm:"size:16;default:'user';not null"`
	Password    string    `json:"-"`
	IsActive    bool      `json:"-" gorm:"not null;default:false"`
	IsStaff     bool      `json:"-" gorm:"not null;default:false"`
	IsSuperuser bool      `json:"-" gorm:"not null;default:false"`
	DateJoined  time.Time `json:"-" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"-"`
}

// ApplyRole is the single place where the role and the staff flag are kept
// in sync. Superusers always stay staff.
func (u *User) ApplyRole(role UserRole) {
	if role == "" {
		role = RoleUser
	}
	u.Role = role
	u.IsStaff = role == RoleAdmin || u.IsSuperuser
}

// BeforeSave keeps role == admin => is_staff on every write path.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.ApplyRole(u.Role)
	return nil
}
