package saloons

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a saloons repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSaloon(ctx context.Context, saloon *models.Saloon) (*models.Saloon, error) {
	if err := r.db.WithContext(ctx).Create(saloon).Error; err != nil {
		return nil, err
	}
	return saloon, nil
}

func (r *repository) FindSaloon(ctx context.Context, saloonID uuid.UUID) (*models.Saloon, error) {
	var saloon models.Saloon
	err := r.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB {
			return db.Order("dining_tables.name ASC")
		}).
		Where("id = ?", saloonID).
		First(&saloon).Error
	if err != nil {
		return nil, err
	}
	return &saloon, nil
}

func (r *repository) ListSaloons(ctx context.Context, restaurantNo string) ([]models.Saloon, error) {
	var saloons []models.Saloon
	err := r.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB {
			return db.Order("dining_tables.name ASC")
		}).
		Where("restaurant_no = ?", restaurantNo).
		Order("name ASC").
		Find(&saloons).Error
	if err != nil {
		return nil, err
	}
	return saloons, nil
}

func (r *repository) UpdateSaloon(ctx context.Context, saloonID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Saloon{}).
		Where("id = ?", saloonID).
		Updates(updates).Error
}

func (r *repository) DeleteSaloon(ctx context.Context, saloonID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", saloonID).
		Delete(&models.Saloon{}).Error
}

func (r *repository) CreateTable(ctx context.Context, table *models.DiningTable) (*models.DiningTable, error) {
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

func (r *repository) FindTable(ctx context.Context, tableID uuid.UUID) (*models.DiningTable, error) {
	var table models.DiningTable
	err := r.db.WithContext(ctx).
		Preload("Saloon").
		Preload("OpenedBy").
		Where("id = ?", tableID).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) ListTablesBySaloon(ctx context.Context, saloonID uuid.UUID) ([]models.DiningTable, error) {
	var tables []models.DiningTable
	err := r.db.WithContext(ctx).
		Where("saloon_id = ?", saloonID).
		Order("name ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) ListTablesByWaiter(ctx context.Context, waiterID uuid.UUID) ([]models.DiningTable, error) {
	var tables []models.DiningTable
	err := r.db.WithContext(ctx).
		Preload("Saloon").
		Where("opened_by_id = ? AND status = ?", waiterID, enums.TableStatusOccupied).
		Order("opened_at ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) UpdateTable(ctx context.Context, tableID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.DiningTable{}).
		Where("id = ?", tableID).
		Updates(updates).Error
}

func (r *repository) DeleteTable(ctx context.Context, tableID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", tableID).
		Delete(&models.DiningTable{}).Error
}
