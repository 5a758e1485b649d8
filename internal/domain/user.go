package domain

import "time"

// Role controls authorization scope. DC, ADC and RO are field officer
// roles; ADMIN and SUPER_ADMIN may manage accounts.
type Role string

const (
	RoleUser       Role = "USER"
	RoleDC         Role = "DC"
	RoleADC        Role = "ADC"
	RoleRO         Role = "RO"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDC, RoleADC, RoleRO, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (r Role) IsOfficer() bool {
	return r == RoleDC || r == RoleADC || r == RoleRO
}

func (r Role) CanManageUsers() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID           UserID     `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"type:citext;uniqueIndex:ux_users_email" json:"email"`
	FullName     string     `gorm:"type:text" json:"fullName"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	Role         Role       `gorm:"type:text;not null;default:USER" json:"role"`
	IsActive     bool       `gorm:"not null;default:false" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
