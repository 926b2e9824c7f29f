package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
)

type stubCategoriesRepo struct {
	categories map[uuid.UUID]*models.Category
}

func newStubCategoriesRepo() *stubCategoriesRepo {
	return &stubCategoriesRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (s *stubCategoriesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCategoriesRepo) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	s.categories[category.ID] = category
	return category, nil
}

func (s *stubCategoriesRepo) FindByID(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	category, ok := s.categories[categoryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (s *stubCategoriesRepo) ListByRestaurant(ctx context.Context, restaurantNo string) ([]models.Category, error) {
	var out []models.Category
	for _, category := range s.categories {
		if category.RestaurantNo == restaurantNo {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (s *stubCategoriesRepo) Update(ctx context.Context, categoryID uuid.UUID, updates map[string]any) error {
	category, ok := s.categories[categoryID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		category.Name = name
	}
	return nil
}

func (s *stubCategoriesRepo) Delete(ctx context.Context, categoryID uuid.UUID) error {
	delete(s.categories, categoryID)
	return nil
}

func TestCreateAndRename(t *testing.T) {
	repo := newStubCategoriesRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	created, err := svc.Create(context.Background(), "Kebabs", "R-1001")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected an id on the created category")
	}

	renamed, err := svc.Rename(context.Background(), created.ID, "R-1001", "Grill")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Grill" {
		t.Fatalf("expected renamed category got %q", renamed.Name)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, err := NewService(newStubCategoriesRepo())
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	if _, err := svc.Create(context.Background(), "", "R-1001"); err == nil {
		t.Fatal("expected error for empty name")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}

	if _, err := svc.Create(context.Background(), "Kebabs", ""); err == nil {
		t.Fatal("expected error for empty restaurant number")
	}
}

func TestDeleteScopedToRestaurant(t *testing.T) {
	repo := newStubCategoriesRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	created, err := svc.Create(context.Background(), "Soups", "R-1001")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Delete(context.Background(), created.ID, "R-2002")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden got %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, "R-1001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err == nil {
		t.Fatal("expected category to be gone")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}
