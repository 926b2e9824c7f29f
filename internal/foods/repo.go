package foods

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a foods repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, food *models.Food) (*models.Food, error) {
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (r *repository) FindByID(ctx context.Context, foodID uuid.UUID) (*models.Food, error) {
	var food models.Food
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", foodID).
		First(&food).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *repository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Food, error) {
	var foods []models.Food
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *repository) ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Food, error) {
	var foods []models.Food
	err := r.db.WithContext(ctx).
		Where("restaurant_no = ? AND is_active = ?", restaurantNo, true).
		Order("name ASC").
		Find(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *repository) Update(ctx context.Context, foodID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Food{}).
		Where("id = ?", foodID).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, foodID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", foodID).
		Delete(&models.Food{}).Error
}
