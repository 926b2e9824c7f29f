package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Zuby128/restorder-admin/api/middleware"
	internalorders "github.com/Zuby128/restorder-admin/internal/orders"
	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/Zuby128/restorder-admin/pkg/pagination"
)

type stubOrdersService struct {
	list          func(ctx context.Context, params pagination.Params, filters internalorders.OrderFilters) (*internalorders.OrderList, error)
	get           func(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error)
	replaceItems  func(ctx context.Context, input internalorders.ReplaceItemsInput) (*models.Order, error)
	updateStatus  func(ctx context.Context, input internalorders.UpdateStatusInput) (*models.Order, error)
	statsFn       func(ctx context.Context, filters internalorders.StatsFilters) (*internalorders.Stats, error)
	applyDiscount func(ctx context.Context, input internalorders.ApplyDiscountInput) (*models.Order, error)
	addCharge     func(ctx context.Context, input internalorders.AddChargeInput) (*models.Order, error)
}

func (s *stubOrdersService) Create(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
	panic("not implemented")
}

func (s *stubOrdersService) Get(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error) {
	if s.get != nil {
		return s.get(ctx, orderID, restaurantNo)
	}
	return nil, nil
}

func (s *stubOrdersService) List(ctx context.Context, params pagination.Params, filters internalorders.OrderFilters) (*internalorders.OrderList, error) {
	if s.list != nil {
		return s.list(ctx, params, filters)
	}
	return &internalorders.OrderList{}, nil
}

func (s *stubOrdersService) ReplaceItems(ctx context.Context, input internalorders.ReplaceItemsInput) (*models.Order, error) {
	if s.replaceItems != nil {
		return s.replaceItems(ctx, input)
	}
	return nil, nil
}

func (s *stubOrdersService) ApplyDiscount(ctx context.Context, input internalorders.ApplyDiscountInput) (*models.Order, error) {
	if s.applyDiscount != nil {
		return s.applyDiscount(ctx, input)
	}
	return nil, nil
}

func (s *stubOrdersService) RemoveDiscount(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error) {
	panic("not implemented")
}

func (s *stubOrdersService) AddCharge(ctx context.Context, input internalorders.AddChargeInput) (*models.Order, error) {
	if s.addCharge != nil {
		return s.addCharge(ctx, input)
	}
	return nil, nil
}

func (s *stubOrdersService) RemoveCharge(ctx context.Context, orderID, chargeID uuid.UUID, restaurantNo string) (*models.Order, error) {
	panic("not implemented")
}

func (s *stubOrdersService) ClearCharges(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error) {
	panic("not implemented")
}

func (s *stubOrdersService) UpdateStatus(ctx context.Context, input internalorders.UpdateStatusInput) (*models.Order, error) {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, input)
	}
	return nil, nil
}

func (s *stubOrdersService) Stats(ctx context.Context, filters internalorders.StatsFilters) (*internalorders.Stats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx, filters)
	}
	return &internalorders.Stats{}, nil
}

func withRestaurant(r *http.Request, restaurantNo string) *http.Request {
	ctx := middleware.WithRestaurant(r.Context(), restaurantNo)
	return r.WithContext(ctx)
}

func TestListScopesToContextRestaurant(t *testing.T) {
	var captured internalorders.OrderFilters
	svc := &stubOrdersService{
		list: func(ctx context.Context, params pagination.Params, filters internalorders.OrderFilters) (*internalorders.OrderList, error) {
			captured = filters
			return &internalorders.OrderList{Orders: []internalorders.OrderSummary{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/?status=pending&page=2", nil)
	req = withRestaurant(req, "R-1001")
	rec := httptest.NewRecorder()
	List(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if captured.RestaurantNo != "R-1001" {
		t.Fatalf("expected restaurant filter from context got %q", captured.RestaurantNo)
	}
	if captured.Status == nil || *captured.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status filter got %v", captured.Status)
	}
}

func TestListRejectsBadStatus(t *testing.T) {
	svc := &stubOrdersService{}
	req := httptest.NewRequest(http.MethodGet, "/?status=shipped", nil)
	req = withRestaurant(req, "R-1001")
	rec := httptest.NewRecorder()
	List(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestReplaceItemsDecodesBody(t *testing.T) {
	var captured internalorders.ReplaceItemsInput
	svc := &stubOrdersService{
		replaceItems: func(ctx context.Context, input internalorders.ReplaceItemsInput) (*models.Order, error) {
			captured = input
			return &models.Order{ID: input.OrderID}, nil
		},
	}

	orderID := uuid.New()
	router := chi.NewRouter()
	router.Patch("/orders/items/{orderId}", ReplaceItems(svc, nil))

	body := `{"items":[{"foodId":"` + uuid.NewString() + `","quantity":2,"priceAtOrder":"40"}]}`
	req := httptest.NewRequest(http.MethodPatch, "/orders/items/"+orderID.String(), strings.NewReader(body))
	req = withRestaurant(req, "R-1001")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if captured.OrderID != orderID || captured.RestaurantNo != "R-1001" {
		t.Fatalf("unexpected input %+v", captured)
	}
	if len(captured.Items) != 1 || captured.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", captured.Items)
	}
}

func TestApplyDiscountDecodesBody(t *testing.T) {
	var captured internalorders.ApplyDiscountInput
	svc := &stubOrdersService{
		applyDiscount: func(ctx context.Context, input internalorders.ApplyDiscountInput) (*models.Order, error) {
			captured = input
			return &models.Order{ID: input.OrderID}, nil
		},
	}

	orderID := uuid.New()
	router := chi.NewRouter()
	router.Patch("/orders/discount/{orderId}", ApplyDiscount(svc, nil))

	body := `{"type":"percentage","value":"10","reason":"regular","appliedBy":"ayse"}`
	req := httptest.NewRequest(http.MethodPatch, "/orders/discount/"+orderID.String(), strings.NewReader(body))
	req = withRestaurant(req, "R-1001")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if captured.OrderID != orderID || captured.RestaurantNo != "R-1001" {
		t.Fatalf("unexpected input %+v", captured)
	}
	if captured.Discount.Type != enums.DiscountTypePercentage {
		t.Fatalf("unexpected discount type %q", captured.Discount.Type)
	}
	if !captured.Discount.Value.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected discount value %s", captured.Discount.Value)
	}
	if captured.Discount.Reason != "regular" || captured.Discount.AppliedBy != "ayse" {
		t.Fatalf("unexpected discount attribution %+v", captured.Discount)
	}
}

func TestAddChargeAttributesWaiterOnly(t *testing.T) {
	var captured internalorders.AddChargeInput
	svc := &stubOrdersService{
		addCharge: func(ctx context.Context, input internalorders.AddChargeInput) (*models.Order, error) {
			captured = input
			return &models.Order{ID: input.OrderID}, nil
		},
	}

	orderID := uuid.New()
	waiterID := uuid.New()
	router := chi.NewRouter()
	router.Post("/orders/additional-charges/{orderId}", AddCharge(svc, nil))

	send := func(role string, userID string) {
		t.Helper()
		body := `{"amount":"15","description":"broken glass"}`
		req := httptest.NewRequest(http.MethodPost, "/orders/additional-charges/"+orderID.String(), strings.NewReader(body))
		ctx := middleware.WithRestaurant(req.Context(), "R-1001")
		ctx = middleware.WithRole(ctx, role)
		ctx = middleware.WithUserID(ctx, userID)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req.WithContext(ctx))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
		}
	}

	send(string(enums.StaffRoleWaiter), waiterID.String())
	if captured.AddedByID == nil || *captured.AddedByID != waiterID {
		t.Fatalf("expected waiter attribution got %v", captured.AddedByID)
	}
	if !captured.Amount.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected amount %s", captured.Amount)
	}

	// owner ids are not waiter rows, the charge stays unattributed
	send(string(enums.StaffRoleOwner), uuid.NewString())
	if captured.AddedByID != nil {
		t.Fatalf("expected no attribution for owner got %v", captured.AddedByID)
	}
}

func TestStatsRejectsForeignRestaurant(t *testing.T) {
	svc := &stubOrdersService{}
	router := chi.NewRouter()
	router.Get("/orders/stats/{restaurant}", Stats(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/orders/stats/R-2002", nil)
	req = withRestaurant(req, "R-1001")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestStatsReturnsAggregates(t *testing.T) {
	svc := &stubOrdersService{
		statsFn: func(ctx context.Context, filters internalorders.StatsFilters) (*internalorders.Stats, error) {
			if filters.RestaurantNo != "R-1001" {
				t.Fatalf("unexpected restaurant %q", filters.RestaurantNo)
			}
			return &internalorders.Stats{TotalOrders: 4}, nil
		},
	}
	router := chi.NewRouter()
	router.Get("/orders/stats/{restaurant}", Stats(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/orders/stats/R-1001", nil)
	req = withRestaurant(req, "R-1001")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var payload struct {
		Data internalorders.Stats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.TotalOrders != 4 {
		t.Fatalf("expected 4 orders got %d", payload.Data.TotalOrders)
	}
}
