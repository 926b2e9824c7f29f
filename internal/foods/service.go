package foods

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/logger"
)

const cacheScope = "foods"

// Service defines menu item operations.
type Service interface {
	Create(ctx context.Context, input CreateFoodInput) (*models.Food, error)
	Get(ctx context.Context, foodID uuid.UUID) (*models.Food, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Food, error)
	ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Food, error)
	Update(ctx context.Context, input UpdateFoodInput) (*models.Food, error)
	Delete(ctx context.Context, foodID uuid.UUID, restaurantNo string) error
}

// CreateFoodInput carries the fields accepted when adding a menu item.
type CreateFoodInput struct {
	Name         string
	Description  *string
	Ingredients  *string
	Price        decimal.Decimal
	CategoryID   uuid.UUID
	RestaurantNo string
	ImageURL     *string
	IsPopular    bool
}

// UpdateFoodInput patches a menu item; nil fields are left unchanged.
type UpdateFoodInput struct {
	FoodID       uuid.UUID
	RestaurantNo string
	Name         *string
	Description  *string
	Ingredients  *string
	Price        *decimal.Decimal
	CategoryID   *uuid.UUID
	ImageURL     *string
	IsPopular    *bool
	IsActive     *bool
}

type service struct {
	repo  Repository
	cache MenuCache
	logg  *logger.Logger
}

// MenuCache is the read-through cache surface for restaurant menus.
type MenuCache interface {
	PutList(ctx context.Context, scope, id string, value any) error
	GetList(ctx context.Context, scope, id string, out any) (found bool, fresh bool, err error)
	Invalidate(ctx context.Context, scope, id string) error
}

// NewService builds a foods service. cache may be nil; lookups then always
// hit the database.
func NewService(repo Repository, cache MenuCache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("foods repository required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateFoodInput) (*models.Food, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food name required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.RestaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}

	food := &models.Food{
		Name:         input.Name,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Price:        input.Price,
		CategoryID:   input.CategoryID,
		RestaurantNo: input.RestaurantNo,
		ImageURL:     input.ImageURL,
		IsPopular:    input.IsPopular,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, food)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create food")
	}
	s.invalidateMenu(ctx, input.RestaurantNo)
	return created, nil
}

func (s *service) Get(ctx context.Context, foodID uuid.UUID) (*models.Food, error) {
	if foodID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food id required")
	}
	food, err := s.repo.FindByID(ctx, foodID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load food")
	}
	return food, nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Food, error) {
	if categoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	foods, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list foods by category")
	}
	return foods, nil
}

func (s *service) ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Food, error) {
	if restaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}

	if s.cache != nil {
		var cached []models.Food
		found, fresh, err := s.cache.GetList(ctx, cacheScope, restaurantNo, &cached)
		if err != nil && s.logg != nil {
			s.logg.Warn(ctx, "menu cache read failed")
		}
		if found && fresh {
			return cached, nil
		}
	}

	foods, err := s.repo.ListByRestaurant(ctx, restaurantNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list foods by restaurant")
	}

	if s.cache != nil {
		if err := s.cache.PutList(ctx, cacheScope, restaurantNo, foods); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "menu cache write failed")
		}
	}
	return foods, nil
}

func (s *service) Update(ctx context.Context, input UpdateFoodInput) (*models.Food, error) {
	if input.FoodID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food id required")
	}

	food, err := s.Get(ctx, input.FoodID)
	if err != nil {
		return nil, err
	}
	if input.RestaurantNo != "" && food.RestaurantNo != input.RestaurantNo {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "food does not belong to restaurant")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = input.Description
	}
	if input.Ingredients != nil {
		updates["ingredients"] = input.Ingredients
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.ImageURL != nil {
		updates["image_url"] = input.ImageURL
	}
	if input.IsPopular != nil {
		updates["is_popular"] = *input.IsPopular
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return food, nil
	}

	if err := s.repo.Update(ctx, input.FoodID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update food")
	}
	s.invalidateMenu(ctx, food.RestaurantNo)
	return s.Get(ctx, input.FoodID)
}

func (s *service) Delete(ctx context.Context, foodID uuid.UUID, restaurantNo string) error {
	if foodID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "food id required")
	}
	food, err := s.Get(ctx, foodID)
	if err != nil {
		return err
	}
	if restaurantNo != "" && food.RestaurantNo != restaurantNo {
		return pkgerrors.New(pkgerrors.CodeForbidden, "food does not belong to restaurant")
	}
	if err := s.repo.Delete(ctx, foodID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete food")
	}
	s.invalidateMenu(ctx, food.RestaurantNo)
	return nil
}

func (s *service) invalidateMenu(ctx context.Context, restaurantNo string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cacheScope, restaurantNo); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "menu cache invalidation failed")
	}
}
