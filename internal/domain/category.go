package domain

import "time"

type ServiceCategory struct {
	ID          CategoryID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:citext;uniqueIndex:ux_service_categories_name" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	IsActive    bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`
}

func (ServiceCategory) TableName() string { return "service_categories" }
