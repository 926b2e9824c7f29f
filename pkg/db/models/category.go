package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups menu items on the dashboard.
type Category struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	RestaurantNo string    `gorm:"column:restaurant_no;not null;index"`
	Foods        []Food    `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
