package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.created_at ASC") }).
		Preload("Items.Food").
		Preload("AdditionalCharges", func(db *gorm.DB) *gorm.DB { return db.Order("additional_charges.added_at ASC") }).
		Preload("Table").
		Preload("Waiter").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	params = pagination.Normalize(params)

	base := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("orders.restaurant_no = ?", filters.RestaurantNo)
	if filters.Status != nil {
		base = base.Where("orders.status = ?", *filters.Status)
	}
	if filters.TableID != nil {
		base = base.Where("orders.table_id = ?", *filters.TableID)
	}
	if filters.WaiterID != nil {
		base = base.Where("orders.waiter_id = ?", *filters.WaiterID)
	}
	if filters.DateFrom != nil {
		base = base.Where("orders.order_time >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		base = base.Where("orders.order_time <= ?", *filters.DateTo)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	type orderRow struct {
		models.Order
		TableName  *string
		WaiterName *string
		TotalItems int
	}

	var rows []orderRow
	err := base.Session(&gorm.Session{}).
		Select(`orders.*,
			dining_tables.name AS table_name,
			waiters.name AS waiter_name,
			COALESCE((SELECT SUM(oi.quantity) FROM order_items oi WHERE oi.order_id = orders.id), 0) AS total_items`).
		Joins("LEFT JOIN dining_tables ON dining_tables.id = orders.table_id").
		Joins("LEFT JOIN waiters ON waiters.id = orders.waiter_id").
		Order("orders.order_time DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, OrderSummary{
			ID:            row.ID,
			TableID:       row.TableID,
			TableName:     row.TableName,
			WaiterID:      row.WaiterID,
			WaiterName:    row.WaiterName,
			Status:        row.Status,
			TotalItems:    row.TotalItems,
			Subtotal:      row.Subtotal,
			TotalPrice:    row.TotalPrice,
			OrderTime:     row.OrderTime,
			CompletedTime: row.CompletedTime,
		})
	}

	return &OrderList{
		Orders: summaries,
		Meta:   pagination.BuildMeta(params, total),
	}, nil
}

func (r *repository) ReplaceOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

func (r *repository) CreateCharge(ctx context.Context, charge *models.AdditionalCharge) (*models.AdditionalCharge, error) {
	if err := r.db.WithContext(ctx).Create(charge).Error; err != nil {
		return nil, err
	}
	return charge, nil
}

func (r *repository) FindCharge(ctx context.Context, chargeID uuid.UUID) (*models.AdditionalCharge, error) {
	var charge models.AdditionalCharge
	err := r.db.WithContext(ctx).
		Where("id = ?", chargeID).
		First(&charge).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *repository) DeleteCharge(ctx context.Context, chargeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", chargeID).
		Delete(&models.AdditionalCharge{}).Error
}

func (r *repository) ClearCharges(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.AdditionalCharge{}).Error
}

func (r *repository) FindChargesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.AdditionalCharge, error) {
	var charges []models.AdditionalCharge
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("added_at ASC").
		Find(&charges).Error
	if err != nil {
		return nil, err
	}
	return charges, nil
}

func (r *repository) Stats(ctx context.Context, filters StatsFilters) (*Stats, error) {
	base := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("restaurant_no = ?", filters.RestaurantNo)
	if filters.DateFrom != nil {
		base = base.Where("order_time >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		base = base.Where("order_time <= ?", *filters.DateTo)
	}

	type statsRow struct {
		TotalOrders            int64
		TotalRevenue           decimal.Decimal
		PendingCount           int64
		PreparingCount         int64
		PaidCount              int64
		CanceledCount          int64
		TotalDiscount          decimal.Decimal
		TotalAdditionalCharges decimal.Decimal
	}

	var row statsRow
	err := base.Session(&gorm.Session{}).
		Select(`COUNT(*) AS total_orders,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN total_price ELSE 0 END), 0) AS total_revenue,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_count,
			COALESCE(SUM(CASE WHEN status = 'preparing' THEN 1 ELSE 0 END), 0) AS preparing_count,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN 1 ELSE 0 END), 0) AS paid_count,
			COALESCE(SUM(CASE WHEN status = 'canceled' THEN 1 ELSE 0 END), 0) AS canceled_count,
			COALESCE(SUM(discount_amount), 0) AS total_discount,
			COALESCE(SUM(additional_charges_total), 0) AS total_additional_charges`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if row.PaidCount > 0 {
		avg = row.TotalRevenue.Div(decimal.NewFromInt(row.PaidCount))
	}

	return &Stats{
		TotalOrders:            row.TotalOrders,
		TotalRevenue:           row.TotalRevenue,
		AvgOrderValue:          avg,
		PendingCount:           row.PendingCount,
		PreparingCount:         row.PreparingCount,
		PaidCount:              row.PaidCount,
		CanceledCount:          row.CanceledCount,
		TotalDiscount:          row.TotalDiscount,
		TotalAdditionalCharges: row.TotalAdditionalCharges,
	}, nil
}
