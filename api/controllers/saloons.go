package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Zuby128/restorder-admin/api/middleware"
	"github.com/Zuby128/restorder-admin/api/responses"
	"github.com/Zuby128/restorder-admin/api/validators"
	"github.com/Zuby128/restorder-admin/internal/orders"
	"github.com/Zuby128/restorder-admin/internal/saloons"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/logger"
)

type saloonRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type createTableRequest struct {
	Name     string    `json:"name" validate:"required,min=1,max=60"`
	SaloonID uuid.UUID `json:"saloonId" validate:"required"`
}

type renameTableRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
}

type openTableRequest struct {
	Items []orders.LineItem `json:"items"`
}

type openTableResponse struct {
	Table any `json:"table"`
	Order any `json:"order"`
}

// CreateSaloon adds a dining room.
func CreateSaloon(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saloonRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saloon, err := svc.CreateSaloon(r.Context(), validators.SanitizeString(req.Name, 120), middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, saloon)
	}
}

// ListSaloons returns the restaurant's saloons with their tables.
func ListSaloons(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListSaloons(r.Context(), middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// RenameSaloon patches a saloon's name.
func RenameSaloon(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saloonID, err := validators.PathUUID(r, "saloonId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req saloonRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		saloon, err := svc.RenameSaloon(r.Context(), saloonID, middleware.RestaurantFromContext(r.Context()), validators.SanitizeString(req.Name, 120))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saloon)
	}
}

// DeleteSaloon removes a saloon and its tables.
func DeleteSaloon(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saloonID, err := validators.PathUUID(r, "saloonId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteSaloon(r.Context(), saloonID, middleware.RestaurantFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CreateTable adds a table to a saloon.
func CreateTable(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTableRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		table, err := svc.CreateTable(r.Context(), saloons.CreateTableInput{
			Name:         validators.SanitizeString(req.Name, 60),
			SaloonID:     req.SaloonID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, table)
	}
}

// RenameTable patches a table's name.
func RenameTable(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID, err := validators.PathUUID(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req renameTableRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		table, err := svc.RenameTable(r.Context(), tableID, middleware.RestaurantFromContext(r.Context()), validators.SanitizeString(req.Name, 60))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}

// DeleteTable removes an available table.
func DeleteTable(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID, err := validators.PathUUID(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteTable(r.Context(), tableID, middleware.RestaurantFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// OpenTable seats a table and opens its pending order for the
// authenticated waiter.
func OpenTable(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID, err := validators.PathUUID(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req openTableRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		waiterID, err := actorUUID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		table, order, err := svc.OpenTable(r.Context(), saloons.OpenTableInput{
			TableID:      tableID,
			WaiterID:     waiterID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			Items:        req.Items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, openTableResponse{Table: table, Order: order})
	}
}

// CloseTable settles the table's order as paid and frees the table.
func CloseTable(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID, err := validators.PathUUID(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := actorUUID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		table, err := svc.CloseTable(r.Context(), saloons.CloseTableInput{
			TableID:      tableID,
			ActorID:      actorID,
			ActorRole:    enums.StaffRole(middleware.RoleFromContext(r.Context())),
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}

// MyTables lists the tables the authenticated waiter currently has open.
func MyTables(svc saloons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		waiterID, err := actorUUID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tables, err := svc.MyTables(r.Context(), waiterID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tables)
	}
}

func actorUUID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing actor identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid actor identity")
	}
	return id, nil
}
