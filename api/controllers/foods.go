package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Zuby128/restorder-admin/api/middleware"
	"github.com/Zuby128/restorder-admin/api/responses"
	"github.com/Zuby128/restorder-admin/api/validators"
	"github.com/Zuby128/restorder-admin/internal/foods"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/logger"
)

type createFoodRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description"`
	Ingredients *string         `json:"ingredients"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
	ImageURL    *string         `json:"imageUrl"`
	IsPopular   bool            `json:"isPopular"`
}

type updateFoodRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Ingredients *string          `json:"ingredients"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
	ImageURL    *string          `json:"imageUrl"`
	IsPopular   *bool            `json:"isPopular"`
	IsActive    *bool            `json:"isActive"`
}

// CreateFood adds a menu item for the authenticated restaurant.
func CreateFood(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFoodRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		food, err := svc.Create(r.Context(), foods.CreateFoodInput{
			Name:         validators.SanitizeString(req.Name, 200),
			Description:  req.Description,
			Ingredients:  req.Ingredients,
			Price:        req.Price,
			CategoryID:   req.CategoryID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			ImageURL:     req.ImageURL,
			IsPopular:    req.IsPopular,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, food)
	}
}

// GetFood returns one menu item.
func GetFood(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodID, err := validators.PathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		food, err := svc.Get(r.Context(), foodID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, food)
	}
}

// ListFoodsByCategory returns the items of one category.
func ListFoodsByCategory(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.PathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListByCategory(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListFoodsByRestaurant returns the restaurant's active menu. The list is
// served from the Redis-backed menu cache when fresh.
func ListFoodsByRestaurant(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantNo := strings.TrimSpace(chi.URLParam(r, "restaurant"))
		if restaurantNo == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "restaurant is required"))
			return
		}
		list, err := svc.ListByRestaurant(r.Context(), restaurantNo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpdateFood patches a menu item.
func UpdateFood(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodID, err := validators.PathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateFoodRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		food, err := svc.Update(r.Context(), foods.UpdateFoodInput{
			FoodID:       foodID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			Name:         req.Name,
			Description:  req.Description,
			Ingredients:  req.Ingredients,
			Price:        req.Price,
			CategoryID:   req.CategoryID,
			ImageURL:     req.ImageURL,
			IsPopular:    req.IsPopular,
			IsActive:     req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, food)
	}
}

// DeleteFood removes a menu item.
func DeleteFood(svc foods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodID, err := validators.PathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), foodID, middleware.RestaurantFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
