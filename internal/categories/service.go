package categories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
)

// Service defines category operations. Deleting a category removes its
// foods through the database cascade.
type Service interface {
	Create(ctx context.Context, name, restaurantNo string) (*models.Category, error)
	Get(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Category, error)
	Rename(ctx context.Context, categoryID uuid.UUID, restaurantNo, name string) (*models.Category, error)
	Delete(ctx context.Context, categoryID uuid.UUID, restaurantNo string) error
}

type service struct {
	repo Repository
}

// NewService builds a categories service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, name, restaurantNo string) (*models.Category, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if restaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	category := &models.Category{Name: name, RestaurantNo: restaurantNo}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	if categoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *service) ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Category, error) {
	if restaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	categories, err := s.repo.ListByRestaurant(ctx, restaurantNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) Rename(ctx context.Context, categoryID uuid.UUID, restaurantNo, name string) (*models.Category, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	category, err := s.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if restaurantNo != "" && category.RestaurantNo != restaurantNo {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "category does not belong to restaurant")
	}
	if err := s.repo.Update(ctx, categoryID, map[string]any{"name": name}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename category")
	}
	return s.Get(ctx, categoryID)
}

func (s *service) Delete(ctx context.Context, categoryID uuid.UUID, restaurantNo string) error {
	category, err := s.Get(ctx, categoryID)
	if err != nil {
		return err
	}
	if restaurantNo != "" && category.RestaurantNo != restaurantNo {
		return pkgerrors.New(pkgerrors.CodeForbidden, "category does not belong to restaurant")
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}
