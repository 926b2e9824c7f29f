package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
)

// Repository is the persistence surface for menu categories.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	FindByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Category, error)
	Update(ctx context.Context, categoryID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, categoryID uuid.UUID) error
}
