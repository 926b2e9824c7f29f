package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

// Waiter is a staff account that takes orders and, when permitted, settles tables.
type Waiter struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserName      string          `gorm:"column:user_name;not null;uniqueIndex"`
	PasswordHash  string          `gorm:"column:password_hash;not null"`
	Name          string          `gorm:"column:name;not null"`
	Surname       *string         `gorm:"column:surname"`
	Role          enums.StaffRole `gorm:"column:role;type:text;not null;default:'waiter'"`
	RestaurantNo  string          `gorm:"column:restaurant_no;not null;index"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	CanCloseTable bool            `gorm:"column:can_close_table;not null;default:false"`
	Notes         types.JSONMap   `gorm:"column:notes;type:jsonb;serializer:json"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
