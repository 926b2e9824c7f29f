package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Zuby128/restorder-admin/api/middleware"
	"github.com/Zuby128/restorder-admin/api/responses"
	"github.com/Zuby128/restorder-admin/api/validators"
	"github.com/Zuby128/restorder-admin/internal/categories"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/logger"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// CreateCategory adds a menu category.
func CreateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.Create(r.Context(), validators.SanitizeString(req.Name, 120), middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// ListCategories returns a restaurant's categories.
func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantNo := strings.TrimSpace(chi.URLParam(r, "restaurant"))
		if restaurantNo == "" {
			restaurantNo = middleware.RestaurantFromContext(r.Context())
		}
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

// RenameCategory patches a category's name.
func RenameCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.PathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.Rename(r.Context(), categoryID, middleware.RestaurantFromContext(r.Context()), validators.SanitizeString(req.Name, 120))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// DeleteCategory removes a category; its foods go with it.
func DeleteCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.PathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), categoryID, middleware.RestaurantFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
