package saloons

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/internal/orders"
	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
)

// Service defines saloon and table operations, including the table
// open/close lifecycle tied to orders.
type Service interface {
	CreateSaloon(ctx context.Context, name, restaurantNo string) (*models.Saloon, error)
	GetSaloon(ctx context.Context, saloonID uuid.UUID) (*models.Saloon, error)
	ListSaloons(ctx context.Context, restaurantNo string) ([]models.Saloon, error)
	RenameSaloon(ctx context.Context, saloonID uuid.UUID, restaurantNo, name string) (*models.Saloon, error)
	DeleteSaloon(ctx context.Context, saloonID uuid.UUID, restaurantNo string) error

	CreateTable(ctx context.Context, input CreateTableInput) (*models.DiningTable, error)
	GetTable(ctx context.Context, tableID uuid.UUID) (*models.DiningTable, error)
	RenameTable(ctx context.Context, tableID uuid.UUID, restaurantNo, name string) (*models.DiningTable, error)
	DeleteTable(ctx context.Context, tableID uuid.UUID, restaurantNo string) error

	OpenTable(ctx context.Context, input OpenTableInput) (*models.DiningTable, *models.Order, error)
	CloseTable(ctx context.Context, input CloseTableInput) (*models.DiningTable, error)
	MyTables(ctx context.Context, waiterID uuid.UUID) ([]models.DiningTable, error)
}

// CreateTableInput adds a table to a saloon.
type CreateTableInput struct {
	Name         string
	SaloonID     uuid.UUID
	RestaurantNo string
}

// OpenTableInput seats a table and opens its pending order.
type OpenTableInput struct {
	TableID      uuid.UUID
	WaiterID     uuid.UUID
	RestaurantNo string
	Items        []orders.LineItem
}

// CloseTableInput settles the table's order and frees it. Owners always
// may close; waiters need the can_close_table permission.
type CloseTableInput struct {
	TableID      uuid.UUID
	ActorID      uuid.UUID
	ActorRole    enums.StaffRole
	RestaurantNo string
}

type orderLifecycle interface {
	Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, input orders.UpdateStatusInput) (*models.Order, error)
}

type waiterFinder interface {
	Get(ctx context.Context, waiterID uuid.UUID) (*models.Waiter, error)
}

type service struct {
	repo    Repository
	orders  orderLifecycle
	waiters waiterFinder
	now     func() time.Time
}

// NewService builds a saloons service.
func NewService(repo Repository, orderSvc orderLifecycle, waiters waiterFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("saloons repository required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if waiters == nil {
		return nil, fmt.Errorf("waiter lookup required")
	}
	return &service{repo: repo, orders: orderSvc, waiters: waiters, now: time.Now}, nil
}

func (s *service) CreateSaloon(ctx context.Context, name, restaurantNo string) (*models.Saloon, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "saloon name required")
	}
	if restaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	saloon := &models.Saloon{Name: name, RestaurantNo: restaurantNo}
	created, err := s.repo.CreateSaloon(ctx, saloon)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create saloon")
	}
	return created, nil
}

func (s *service) GetSaloon(ctx context.Context, saloonID uuid.UUID) (*models.Saloon, error) {
	if saloonID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "saloon id required")
	}
	saloon, err := s.repo.FindSaloon(ctx, saloonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "saloon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load saloon")
	}
	return saloon, nil
}

func (s *service) ListSaloons(ctx context.Context, restaurantNo string) ([]models.Saloon, error) {
	if restaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	saloons, err := s.repo.ListSaloons(ctx, restaurantNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list saloons")
	}
	return saloons, nil
}

func (s *service) RenameSaloon(ctx context.Context, saloonID uuid.UUID, restaurantNo, name string) (*models.Saloon, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "saloon name required")
	}
	if _, err := s.scopedSaloon(ctx, saloonID, restaurantNo); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSaloon(ctx, saloonID, map[string]any{"name": name}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename saloon")
	}
	return s.GetSaloon(ctx, saloonID)
}

func (s *service) DeleteSaloon(ctx context.Context, saloonID uuid.UUID, restaurantNo string) error {
	saloon, err := s.scopedSaloon(ctx, saloonID, restaurantNo)
	if err != nil {
		return err
	}
	for _, table := range saloon.Tables {
		if table.Status == enums.TableStatusOccupied {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "saloon has occupied tables")
		}
	}
	if err := s.repo.DeleteSaloon(ctx, saloonID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete saloon")
	}
	return nil
}

func (s *service) CreateTable(ctx context.Context, input CreateTableInput) (*models.DiningTable, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table name required")
	}
	saloon, err := s.scopedSaloon(ctx, input.SaloonID, input.RestaurantNo)
	if err != nil {
		return nil, err
	}
	table := &models.DiningTable{
		Name:         input.Name,
		SaloonID:     saloon.ID,
		RestaurantNo: saloon.RestaurantNo,
		Status:       enums.TableStatusAvailable,
	}
	created, err := s.repo.CreateTable(ctx, table)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create table")
	}
	return created, nil
}

func (s *service) GetTable(ctx context.Context, tableID uuid.UUID) (*models.DiningTable, error) {
	if tableID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table id required")
	}
	table, err := s.repo.FindTable(ctx, tableID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load table")
	}
	return table, nil
}

func (s *service) RenameTable(ctx context.Context, tableID uuid.UUID, restaurantNo, name string) (*models.DiningTable, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table name required")
	}
	if _, err := s.scopedTable(ctx, tableID, restaurantNo); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTable(ctx, tableID, map[string]any{"name": name}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename table")
	}
	return s.GetTable(ctx, tableID)
}

func (s *service) DeleteTable(ctx context.Context, tableID uuid.UUID, restaurantNo string) error {
	table, err := s.scopedTable(ctx, tableID, restaurantNo)
	if err != nil {
		return err
	}
	if table.Status == enums.TableStatusOccupied {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "table is occupied")
	}
	if err := s.repo.DeleteTable(ctx, tableID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete table")
	}
	return nil
}

func (s *service) OpenTable(ctx context.Context, input OpenTableInput) (*models.DiningTable, *models.Order, error) {
	table, err := s.scopedTable(ctx, input.TableID, input.RestaurantNo)
	if err != nil {
		return nil, nil, err
	}
	if table.Status == enums.TableStatusOccupied {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "table already occupied")
	}
	if input.WaiterID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "waiter id required")
	}
	if _, err := s.waiters.Get(ctx, input.WaiterID); err != nil {
		return nil, nil, err
	}

	tableID := table.ID
	waiterID := input.WaiterID
	order, err := s.orders.Create(ctx, orders.CreateOrderInput{
		RestaurantNo: table.RestaurantNo,
		TableID:      &tableID,
		WaiterID:     &waiterID,
		Items:        input.Items,
	})
	if err != nil {
		return nil, nil, err
	}

	openedAt := s.now()
	updates := map[string]any{
		"status":           enums.TableStatusOccupied,
		"current_order_id": order.ID,
		"opened_by_id":     waiterID,
		"opened_at":        openedAt,
	}
	if err := s.repo.UpdateTable(ctx, tableID, updates); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "occupy table")
	}

	updated, err := s.GetTable(ctx, tableID)
	if err != nil {
		return nil, nil, err
	}
	return updated, order, nil
}

func (s *service) CloseTable(ctx context.Context, input CloseTableInput) (*models.DiningTable, error) {
	table, err := s.scopedTable(ctx, input.TableID, input.RestaurantNo)
	if err != nil {
		return nil, err
	}
	if table.Status != enums.TableStatusOccupied || table.CurrentOrderID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "table has no open order")
	}

	if input.ActorRole != enums.StaffRoleOwner {
		waiter, err := s.waiters.Get(ctx, input.ActorID)
		if err != nil {
			return nil, err
		}
		if !waiter.CanCloseTable {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "closing tables is not permitted for this account")
		}
	}

	if _, err := s.orders.UpdateStatus(ctx, orders.UpdateStatusInput{
		OrderID:      *table.CurrentOrderID,
		RestaurantNo: table.RestaurantNo,
		Status:       enums.OrderStatusPaid,
	}); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"status":           enums.TableStatusAvailable,
		"current_order_id": nil,
		"opened_by_id":     nil,
		"opened_at":        nil,
	}
	if err := s.repo.UpdateTable(ctx, input.TableID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "free table")
	}
	return s.GetTable(ctx, input.TableID)
}

func (s *service) MyTables(ctx context.Context, waiterID uuid.UUID) ([]models.DiningTable, error) {
	if waiterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "waiter id required")
	}
	tables, err := s.repo.ListTablesByWaiter(ctx, waiterID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list waiter tables")
	}
	return tables, nil
}

func (s *service) scopedSaloon(ctx context.Context, saloonID uuid.UUID, restaurantNo string) (*models.Saloon, error) {
	saloon, err := s.GetSaloon(ctx, saloonID)
	if err != nil {
		return nil, err
	}
	if restaurantNo != "" && saloon.RestaurantNo != restaurantNo {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "saloon does not belong to restaurant")
	}
	return saloon, nil
}

func (s *service) scopedTable(ctx context.Context, tableID uuid.UUID, restaurantNo string) (*models.DiningTable, error) {
	table, err := s.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if restaurantNo != "" && table.RestaurantNo != restaurantNo {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "table does not belong to restaurant")
	}
	return table, nil
}
