package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/pagination"
)

// Repository defines persistence operations for orders and their charges.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	ReplaceOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	CreateCharge(ctx context.Context, charge *models.AdditionalCharge) (*models.AdditionalCharge, error)
	FindCharge(ctx context.Context, chargeID uuid.UUID) (*models.AdditionalCharge, error)
	DeleteCharge(ctx context.Context, chargeID uuid.UUID) error
	ClearCharges(ctx context.Context, orderID uuid.UUID) error
	FindChargesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.AdditionalCharge, error)
	Stats(ctx context.Context, filters StatsFilters) (*Stats, error)
}
