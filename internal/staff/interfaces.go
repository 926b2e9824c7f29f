package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
)

// Repository is the persistence surface for waiter accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, waiter *models.Waiter) (*models.Waiter, error)
	FindByID(ctx context.Context, waiterID uuid.UUID) (*models.Waiter, error)
	FindByUserName(ctx context.Context, userName string) (*models.Waiter, error)
	ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Waiter, error)
	Update(ctx context.Context, waiterID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, waiterID uuid.UUID) error
}
