package controllers

import (
	"net/http"

	"github.com/Zuby128/restorder-admin/api/middleware"
	"github.com/Zuby128/restorder-admin/api/responses"
	"github.com/Zuby128/restorder-admin/api/validators"
	"github.com/Zuby128/restorder-admin/internal/staff"
	"github.com/Zuby128/restorder-admin/pkg/logger"
)

type createStaffRequest struct {
	UserName      string  `json:"userName" validate:"required,min=3,max=60"`
	Password      string  `json:"password"`
	Name          string  `json:"name" validate:"required"`
	Surname       *string `json:"surname"`
	CanCloseTable bool    `json:"canCloseTable"`
}

type updateStaffRequest struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Password *string `json:"password"`
}

type staffLoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type staffCreatedResponse struct {
	Staff        any    `json:"staff"`
	TempPassword string `json:"tempPassword,omitempty"`
}

type staffLoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Staff        any    `json:"staff"`
}

// CreateStaff registers a waiter. A generated first-login password is
// returned once when none was supplied.
func CreateStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createStaffRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, tempPassword, err := svc.Create(r.Context(), staff.CreateStaffInput{
			UserName:      validators.SanitizeString(req.UserName, 60),
			Password:      req.Password,
			Name:          validators.SanitizeString(req.Name, 120),
			Surname:       req.Surname,
			RestaurantNo:  middleware.RestaurantFromContext(r.Context()),
			CanCloseTable: req.CanCloseTable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, staffCreatedResponse{Staff: created, TempPassword: tempPassword})
	}
}

// ListStaff returns the restaurant's waiters.
func ListStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListStaffBasic returns the trimmed active-waiter list for dropdowns.
func ListStaffBasic(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListBasic(r.Context(), middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UpdateStaff patches a waiter account.
func UpdateStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		waiterID, err := validators.PathUUID(r, "staffId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateStaffRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), staff.UpdateStaffInput{
			WaiterID:     waiterID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			Name:         req.Name,
			Surname:      req.Surname,
			Password:     req.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DeleteStaff removes a waiter account.
func DeleteStaff(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		waiterID, err := validators.PathUUID(r, "staffId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), waiterID, middleware.RestaurantFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ToggleStaffStatus flips the waiter's active flag.
func ToggleStaffStatus(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		waiterID, err := validators.PathUUID(r, "staffId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.ToggleStatus(r.Context(), waiterID, middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ToggleStaffCloseTable flips the waiter's table-closing permission.
func ToggleStaffCloseTable(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		waiterID, err := validators.PathUUID(r, "staffId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.ToggleCloseTable(r.Context(), waiterID, middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// StaffLogin authenticates a waiter and issues a token pair.
func StaffLogin(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req staffLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Login(r.Context(), req.UserName, req.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, staffLoginResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			Staff:        result.Waiter,
		})
	}
}
