package saloons

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/internal/orders"
	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
)

type stubSaloonsRepo struct {
	saloons map[uuid.UUID]*models.Saloon
	tables  map[uuid.UUID]*models.DiningTable
}

func newStubSaloonsRepo() *stubSaloonsRepo {
	return &stubSaloonsRepo{
		saloons: make(map[uuid.UUID]*models.Saloon),
		tables:  make(map[uuid.UUID]*models.DiningTable),
	}
}

func (s *stubSaloonsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubSaloonsRepo) CreateSaloon(ctx context.Context, saloon *models.Saloon) (*models.Saloon, error) {
	if saloon.ID == uuid.Nil {
		saloon.ID = uuid.New()
	}
	s.saloons[saloon.ID] = saloon
	return saloon, nil
}

func (s *stubSaloonsRepo) FindSaloon(ctx context.Context, saloonID uuid.UUID) (*models.Saloon, error) {
	saloon, ok := s.saloons[saloonID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *saloon
	copied.Tables = nil
	for _, table := range s.tables {
		if table.SaloonID == saloonID {
			copied.Tables = append(copied.Tables, *table)
		}
	}
	return &copied, nil
}

func (s *stubSaloonsRepo) ListSaloons(ctx context.Context, restaurantNo string) ([]models.Saloon, error) {
	var out []models.Saloon
	for id, saloon := range s.saloons {
		if saloon.RestaurantNo == restaurantNo {
			loaded, _ := s.FindSaloon(ctx, id)
			out = append(out, *loaded)
		}
	}
	return out, nil
}

func (s *stubSaloonsRepo) UpdateSaloon(ctx context.Context, saloonID uuid.UUID, updates map[string]any) error {
	saloon, ok := s.saloons[saloonID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		saloon.Name = name
	}
	return nil
}

func (s *stubSaloonsRepo) DeleteSaloon(ctx context.Context, saloonID uuid.UUID) error {
	delete(s.saloons, saloonID)
	return nil
}

func (s *stubSaloonsRepo) CreateTable(ctx context.Context, table *models.DiningTable) (*models.DiningTable, error) {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	s.tables[table.ID] = table
	return table, nil
}

func (s *stubSaloonsRepo) FindTable(ctx context.Context, tableID uuid.UUID) (*models.DiningTable, error) {
	table, ok := s.tables[tableID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return table, nil
}

func (s *stubSaloonsRepo) ListTablesBySaloon(ctx context.Context, saloonID uuid.UUID) ([]models.DiningTable, error) {
	var out []models.DiningTable
	for _, table := range s.tables {
		if table.SaloonID == saloonID {
			out = append(out, *table)
		}
	}
	return out, nil
}

func (s *stubSaloonsRepo) ListTablesByWaiter(ctx context.Context, waiterID uuid.UUID) ([]models.DiningTable, error) {
	var out []models.DiningTable
	for _, table := range s.tables {
		if table.OpenedByID != nil && *table.OpenedByID == waiterID && table.Status == enums.TableStatusOccupied {
			out = append(out, *table)
		}
	}
	return out, nil
}

func (s *stubSaloonsRepo) UpdateTable(ctx context.Context, tableID uuid.UUID, updates map[string]any) error {
	table, ok := s.tables[tableID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		table.Name = name
	}
	if status, ok := updates["status"].(enums.TableStatus); ok {
		table.Status = status
	}
	if raw, ok := updates["current_order_id"]; ok {
		if id, ok := raw.(uuid.UUID); ok {
			table.CurrentOrderID = &id
		} else {
			table.CurrentOrderID = nil
		}
	}
	if raw, ok := updates["opened_by_id"]; ok {
		if id, ok := raw.(uuid.UUID); ok {
			table.OpenedByID = &id
		} else {
			table.OpenedByID = nil
		}
	}
	return nil
}

func (s *stubSaloonsRepo) DeleteTable(ctx context.Context, tableID uuid.UUID) error {
	delete(s.tables, tableID)
	return nil
}

type stubOrderLifecycle struct {
	orders        map[uuid.UUID]*models.Order
	statusUpdates []enums.OrderStatus
}

func newStubOrderLifecycle() *stubOrderLifecycle {
	return &stubOrderLifecycle{orders: make(map[uuid.UUID]*models.Order)}
}

func (s *stubOrderLifecycle) Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	order := &models.Order{
		ID:           uuid.New(),
		TableID:      input.TableID,
		WaiterID:     input.WaiterID,
		Status:       enums.OrderStatusPending,
		RestaurantNo: input.RestaurantNo,
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderLifecycle) UpdateStatus(ctx context.Context, input orders.UpdateStatusInput) (*models.Order, error) {
	order, ok := s.orders[input.OrderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	order.Status = input.Status
	s.statusUpdates = append(s.statusUpdates, input.Status)
	return order, nil
}

type stubWaiterFinder struct {
	waiters map[uuid.UUID]*models.Waiter
}

func (s *stubWaiterFinder) Get(ctx context.Context, waiterID uuid.UUID) (*models.Waiter, error) {
	waiter, ok := s.waiters[waiterID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "waiter not found")
	}
	return waiter, nil
}

func seedWaiter(finder *stubWaiterFinder, canClose bool) *models.Waiter {
	waiter := &models.Waiter{
		ID:            uuid.New(),
		UserName:      "w",
		Name:          "Waiter",
		Role:          enums.StaffRoleWaiter,
		RestaurantNo:  "R-1001",
		IsActive:      true,
		CanCloseTable: canClose,
	}
	finder.waiters[waiter.ID] = waiter
	return waiter
}

func setup(t *testing.T) (Service, *stubSaloonsRepo, *stubOrderLifecycle, *stubWaiterFinder) {
	t.Helper()
	repo := newStubSaloonsRepo()
	orderSvc := newStubOrderLifecycle()
	waiters := &stubWaiterFinder{waiters: make(map[uuid.UUID]*models.Waiter)}
	svc, err := NewService(repo, orderSvc, waiters)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc, repo, orderSvc, waiters
}

func mustSaloonWithTable(t *testing.T, svc Service) (*models.Saloon, *models.DiningTable) {
	t.Helper()
	saloon, err := svc.CreateSaloon(context.Background(), "Terrace", "R-1001")
	if err != nil {
		t.Fatalf("create saloon: %v", err)
	}
	table, err := svc.CreateTable(context.Background(), CreateTableInput{
		Name:         "T1",
		SaloonID:     saloon.ID,
		RestaurantNo: "R-1001",
	})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return saloon, table
}

func TestOpenTableCreatesPendingOrder(t *testing.T) {
	svc, _, orderSvc, waiters := setup(t)
	_, table := mustSaloonWithTable(t, svc)
	waiter := seedWaiter(waiters, false)

	opened, order, err := svc.OpenTable(context.Background(), OpenTableInput{
		TableID:      table.ID,
		WaiterID:     waiter.ID,
		RestaurantNo: "R-1001",
	})
	if err != nil {
		t.Fatalf("open table: %v", err)
	}
	if opened.Status != enums.TableStatusOccupied {
		t.Fatalf("expected occupied got %s", opened.Status)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending order got %s", order.Status)
	}
	if opened.CurrentOrderID == nil || *opened.CurrentOrderID != order.ID {
		t.Fatal("expected table to point at the new order")
	}
	if opened.OpenedByID == nil || *opened.OpenedByID != waiter.ID {
		t.Fatal("expected table to record the opening waiter")
	}

	// opening again is a conflict
	_, _, err = svc.OpenTable(context.Background(), OpenTableInput{
		TableID:      table.ID,
		WaiterID:     waiter.ID,
		RestaurantNo: "R-1001",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}

	if len(orderSvc.orders) != 1 {
		t.Fatalf("expected a single order got %d", len(orderSvc.orders))
	}
}

func TestCloseTableRequiresPermission(t *testing.T) {
	svc, _, orderSvc, waiters := setup(t)
	_, table := mustSaloonWithTable(t, svc)
	opener := seedWaiter(waiters, false)
	closer := seedWaiter(waiters, true)

	if _, _, err := svc.OpenTable(context.Background(), OpenTableInput{
		TableID:      table.ID,
		WaiterID:     opener.ID,
		RestaurantNo: "R-1001",
	}); err != nil {
		t.Fatalf("open table: %v", err)
	}

	_, err := svc.CloseTable(context.Background(), CloseTableInput{
		TableID:      table.ID,
		ActorID:      opener.ID,
		ActorRole:    enums.StaffRoleWaiter,
		RestaurantNo: "R-1001",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden got %v", err)
	}

	freed, err := svc.CloseTable(context.Background(), CloseTableInput{
		TableID:      table.ID,
		ActorID:      closer.ID,
		ActorRole:    enums.StaffRoleWaiter,
		RestaurantNo: "R-1001",
	})
	if err != nil {
		t.Fatalf("close table: %v", err)
	}
	if freed.Status != enums.TableStatusAvailable || freed.CurrentOrderID != nil {
		t.Fatalf("expected freed table got %+v", freed)
	}
	if len(orderSvc.statusUpdates) != 1 || orderSvc.statusUpdates[0] != enums.OrderStatusPaid {
		t.Fatalf("expected a single paid settlement got %v", orderSvc.statusUpdates)
	}
}

func TestCloseTableOwnerBypassesPermission(t *testing.T) {
	svc, _, _, waiters := setup(t)
	_, table := mustSaloonWithTable(t, svc)
	opener := seedWaiter(waiters, false)

	if _, _, err := svc.OpenTable(context.Background(), OpenTableInput{
		TableID:      table.ID,
		WaiterID:     opener.ID,
		RestaurantNo: "R-1001",
	}); err != nil {
		t.Fatalf("open table: %v", err)
	}

	freed, err := svc.CloseTable(context.Background(), CloseTableInput{
		TableID:      table.ID,
		ActorID:      uuid.New(),
		ActorRole:    enums.StaffRoleOwner,
		RestaurantNo: "R-1001",
	})
	if err != nil {
		t.Fatalf("owner close: %v", err)
	}
	if freed.Status != enums.TableStatusAvailable {
		t.Fatalf("expected available table got %s", freed.Status)
	}
}

func TestCloseTableWithoutOpenOrder(t *testing.T) {
	svc, _, _, waiters := setup(t)
	_, table := mustSaloonWithTable(t, svc)
	closer := seedWaiter(waiters, true)

	_, err := svc.CloseTable(context.Background(), CloseTableInput{
		TableID:      table.ID,
		ActorID:      closer.ID,
		ActorRole:    enums.StaffRoleWaiter,
		RestaurantNo: "R-1001",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestMyTables(t *testing.T) {
	svc, _, _, waiters := setup(t)
	saloon, table := mustSaloonWithTable(t, svc)
	other, err := svc.CreateTable(context.Background(), CreateTableInput{Name: "T2", SaloonID: saloon.ID, RestaurantNo: "R-1001"})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	mine := seedWaiter(waiters, false)
	colleague := seedWaiter(waiters, false)

	if _, _, err := svc.OpenTable(context.Background(), OpenTableInput{TableID: table.ID, WaiterID: mine.ID, RestaurantNo: "R-1001"}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, _, err := svc.OpenTable(context.Background(), OpenTableInput{TableID: other.ID, WaiterID: colleague.ID, RestaurantNo: "R-1001"}); err != nil {
		t.Fatalf("open: %v", err)
	}

	tables, err := svc.MyTables(context.Background(), mine.ID)
	if err != nil {
		t.Fatalf("my tables: %v", err)
	}
	if len(tables) != 1 || tables[0].ID != table.ID {
		t.Fatalf("expected only the table opened by the waiter got %+v", tables)
	}
}

func TestDeleteGuards(t *testing.T) {
	svc, _, _, waiters := setup(t)
	saloon, table := mustSaloonWithTable(t, svc)
	waiter := seedWaiter(waiters, false)

	if _, _, err := svc.OpenTable(context.Background(), OpenTableInput{TableID: table.ID, WaiterID: waiter.ID, RestaurantNo: "R-1001"}); err != nil {
		t.Fatalf("open: %v", err)
	}

	err := svc.DeleteTable(context.Background(), table.ID, "R-1001")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected conflict deleting occupied table got %v", err)
	}

	err = svc.DeleteSaloon(context.Background(), saloon.ID, "R-1001")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected conflict deleting saloon with occupied tables got %v", err)
	}
}
