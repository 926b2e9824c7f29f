package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Zuby128/restorder-admin/pkg/enums"
)

// User is a restaurant owner account able to manage the back office.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string          `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Name         string          `gorm:"column:name;not null"`
	Surname      *string         `gorm:"column:surname"`
	Role         enums.StaffRole `gorm:"column:role;type:text;not null;default:'owner'"`
	RestaurantNo string          `gorm:"column:restaurant_no;not null;index"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
