package models

import (
	"time"

	"github.com/google/uuid"
)

// Saloon is a named dining room grouping tables.
type Saloon struct {
	ID           uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string        `gorm:"column:name;not null"`
	RestaurantNo string        `gorm:"column:restaurant_no;not null;index"`
	Tables       []DiningTable `gorm:"foreignKey:SaloonID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
