package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a staff repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, waiter *models.Waiter) (*models.Waiter, error) {
	if err := r.db.WithContext(ctx).Create(waiter).Error; err != nil {
		return nil, err
	}
	return waiter, nil
}

func (r *repository) FindByID(ctx context.Context, waiterID uuid.UUID) (*models.Waiter, error) {
	var waiter models.Waiter
	err := r.db.WithContext(ctx).
		Where("id = ?", waiterID).
		First(&waiter).Error
	if err != nil {
		return nil, err
	}
	return &waiter, nil
}

func (r *repository) FindByUserName(ctx context.Context, userName string) (*models.Waiter, error) {
	var waiter models.Waiter
	err := r.db.WithContext(ctx).
		Where("user_name = ?", userName).
		First(&waiter).Error
	if err != nil {
		return nil, err
	}
	return &waiter, nil
}

func (r *repository) ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Waiter, error) {
	var waiters []models.Waiter
	err := r.db.WithContext(ctx).
		Where("restaurant_no = ?", restaurantNo).
		Order("name ASC").
		Find(&waiters).Error
	if err != nil {
		return nil, err
	}
	return waiters, nil
}

func (r *repository) Update(ctx context.Context, waiterID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Waiter{}).
		Where("id = ?", waiterID).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, waiterID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", waiterID).
		Delete(&models.Waiter{}).Error
}
