package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Zuby128/restorder-admin/pkg/enums"
)

// DiningTable is a single table within a saloon. An occupied table points at
// its currently open order and the waiter who opened it.
type DiningTable struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string            `gorm:"column:name;not null"`
	SaloonID       uuid.UUID         `gorm:"column:saloon_id;type:uuid;not null;index"`
	Saloon         *Saloon           `gorm:"foreignKey:SaloonID"`
	RestaurantNo   string            `gorm:"column:restaurant_no;not null;index"`
	Status         enums.TableStatus `gorm:"column:status;type:text;not null;default:'available'"`
	CurrentOrderID *uuid.UUID        `gorm:"column:current_order_id;type:uuid"`
	OpenedByID     *uuid.UUID        `gorm:"column:opened_by_id;type:uuid"`
	OpenedBy       *Waiter           `gorm:"foreignKey:OpenedByID"`
	OpenedAt       *time.Time        `gorm:"column:opened_at"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
