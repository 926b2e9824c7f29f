package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Food is a menu item. Price is the current menu price; ordered lines keep
// their own captured price and are not affected by later edits here.
type Food struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Description  *string         `gorm:"column:description"`
	Ingredients  *string         `gorm:"column:ingredients"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CategoryID   uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category     *Category       `gorm:"foreignKey:CategoryID"`
	RestaurantNo string          `gorm:"column:restaurant_no;not null;index"`
	ImageURL     *string         `gorm:"column:image_url"`
	IsPopular    bool            `gorm:"column:is_popular;not null;default:false"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
