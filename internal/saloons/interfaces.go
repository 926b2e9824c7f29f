package saloons

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
)

// Repository is the persistence surface for saloons and their tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateSaloon(ctx context.Context, saloon *models.Saloon) (*models.Saloon, error)
	FindSaloon(ctx context.Context, saloonID uuid.UUID) (*models.Saloon, error)
	ListSaloons(ctx context.Context, restaurantNo string) ([]models.Saloon, error)
	UpdateSaloon(ctx context.Context, saloonID uuid.UUID, updates map[string]any) error
	DeleteSaloon(ctx context.Context, saloonID uuid.UUID) error

	CreateTable(ctx context.Context, table *models.DiningTable) (*models.DiningTable, error)
	FindTable(ctx context.Context, tableID uuid.UUID) (*models.DiningTable, error)
	ListTablesBySaloon(ctx context.Context, saloonID uuid.UUID) ([]models.DiningTable, error)
	ListTablesByWaiter(ctx context.Context, waiterID uuid.UUID) ([]models.DiningTable, error)
	UpdateTable(ctx context.Context, tableID uuid.UUID, updates map[string]any) error
	DeleteTable(ctx context.Context, tableID uuid.UUID) error
}
