package foods

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
)

// Repository defines persistence operations for menu items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, food *models.Food) (*models.Food, error)
	FindByID(ctx context.Context, foodID uuid.UUID) (*models.Food, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Food, error)
	ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Food, error)
	Update(ctx context.Context, foodID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, foodID uuid.UUID) error
}
